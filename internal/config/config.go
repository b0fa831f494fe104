// Package config 统一配置管理
//
// 配置加载策略：
//  1. 从 .env 加载敏感信息（数据库口令、会话密钥）和 APP_ENV
//  2. 根据 APP_ENV 加载对应的 configs/{env}.yaml 配置文件
//  3. 环境变量覆盖 YAML 配置
//
// 使用方式：
//   - 开发环境: APP_ENV=dev (默认)
//   - 测试环境: APP_ENV=test
//   - 生产环境: APP_ENV=prod
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"shangan/internal/storage"
)

// Environment 环境类型
type Environment string

const (
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
	EnvDevelopment Environment = "dev"
)

// YAMLConfig YAML 配置文件结构
type YAMLConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	Name    string `yaml:"name"`
	SSLMode string `yaml:"sslmode"`
}

// StoreConfig 存储后端选择
type StoreConfig struct {
	Driver        string `yaml:"driver"` // pg | json，留空时按 DATABASE_URL 自动选择
	DataDir       string `yaml:"data_dir"`
	MigrationsDir string `yaml:"migrations_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | text
}

// Config 应用配置（最终使用的配置）
type Config struct {
	Env           Environment
	Port          string
	DatabaseURL   string
	DataDriver    storage.Driver
	DataDir       string
	MigrationsDir string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	LogLevel      string
	LogFormat     string
}

var configPaths = []string{
	"configs",
	"../configs",
	"../../configs",
	"../../../configs",
}

var envPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"../../../.env",
}

// Load 加载配置
// 1. 加载 .env（敏感信息 + APP_ENV）
// 2. 根据 APP_ENV 加载 configs/{env}.yaml
// 3. 环境变量覆盖，构建最终配置
func Load() *Config {
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	env := parseEnv(getEnv("APP_ENV", "dev"))
	yamlCfg := loadYAMLConfig(env)

	// DATABASE_URL 整串覆盖 > YAML 分字段拼接
	databaseURL := getEnv("DATABASE_URL", os.Getenv("POSTGRES_URL"))
	if databaseURL == "" && yamlCfg.Database.Host != "" {
		dbPassword := getEnv("DB_PASSWORD", "shangan_dev_password")
		databaseURL = buildDatabaseURL(yamlCfg.Database, dbPassword)
	}

	return &Config{
		Env:           env,
		Port:          getEnv("PORT", yamlCfg.Server.Port),
		DatabaseURL:   databaseURL,
		DataDriver:    resolveDriver(getEnv("DATA_DRIVER", yamlCfg.Store.Driver), databaseURL),
		DataDir:       getEnv("DATA_DIR", yamlCfg.Store.DataDir),
		MigrationsDir: getEnv("MIGRATIONS_DIR", yamlCfg.Store.MigrationsDir),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@shangan.ai"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123456"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		LogLevel:      getEnv("LOG_LEVEL", yamlCfg.Log.Level),
		LogFormat:     getEnv("LOG_FORMAT", yamlCfg.Log.Format),
	}
}

// resolveDriver 后端选择：显式指定优先，否则配置了数据库连接串就用关系型后端
func resolveDriver(explicit, databaseURL string) storage.Driver {
	switch strings.ToLower(explicit) {
	case "pg", "postgres":
		return storage.DriverPG
	case "json", "file":
		return storage.DriverJSON
	}
	if databaseURL != "" {
		return storage.DriverPG
	}
	return storage.DriverJSON
}

// StoreOptions 转换为存储工厂参数
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		Driver:        c.DataDriver,
		DatabaseURL:   c.DatabaseURL,
		DataDir:       c.DataDir,
		MigrationsDir: c.MigrationsDir,
		AdminEmail:    c.AdminEmail,
		AdminPassword: c.AdminPassword,
	}
}

// loadYAMLConfig 加载 YAML 配置文件
// 加载顺序：默认值 → common.yaml → {env}.yaml
func loadYAMLConfig(env Environment) *YAMLConfig {
	cfg := &YAMLConfig{
		Server: ServerConfig{Port: "8080"},
		Store:  StoreConfig{DataDir: "data", MigrationsDir: "migrations"},
		Log:    LogConfig{Level: "info", Format: "json"},
	}

	for _, base := range configPaths {
		path := filepath.Join(base, "common.yaml")
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	filename := fmt.Sprintf("%s.yaml", env)
	for _, base := range configPaths {
		path := filepath.Join(base, filename)
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, cfg)
			break
		}
	}

	return cfg
}

// buildDatabaseURL 构建 PostgreSQL 连接字符串
func buildDatabaseURL(db DatabaseConfig, password string) string {
	sslmode := db.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User, password, db.Host, db.Port, db.Name, sslmode)
}

func parseEnv(env string) Environment {
	switch strings.ToLower(env) {
	case "test":
		return EnvTest
	case "prod", "production":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProduction 是否为生产环境（控制会话 cookie 的 Secure 标记）
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// String 返回配置摘要（隐藏密码）
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Driver: %s, DB: %s, Port: %s}",
		c.Env, c.DataDriver, maskPassword(c.DatabaseURL), c.Port)
}

// maskPassword 隐藏连接串中的密码
func maskPassword(url string) string {
	re := regexp.MustCompile(`(://[^:]+:)([^@]+)(@)`)
	return re.ReplaceAllString(url, "${1}***${3}")
}

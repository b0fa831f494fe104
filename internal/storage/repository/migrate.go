package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// Bootstrap Schema 引导，幂等，可在每次进程启动时执行
//
// 双路径：migrationsDir 下存在 .sql 脚本时按文件名顺序重放（已应用的跳过），
// 否则回退到方言内联 DDL（CREATE TABLE IF NOT EXISTS）。
func (s *Store) Bootstrap(migrationsDir string) error {
	scripts, err := listMigrations(migrationsDir)
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return s.dialect.AutoMigrate(s.db)
	}
	return s.applyMigrations(migrationsDir, scripts)
}

// listMigrations 枚举迁移目录下的 .sql 文件，目录不存在视为无脚本
func listMigrations(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var scripts []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			scripts = append(scripts, e.Name())
		}
	}
	sort.Strings(scripts)
	return scripts, nil
}

// applyMigrations 重放迁移脚本，schema_migrations 表记录已应用的文件名
func (s *Store) applyMigrations(dir string, scripts []string) error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, name := range scripts {
		var applied int
		err := s.db.QueryRow(s.rebind(
			`SELECT COUNT(1) FROM schema_migrations WHERE name = $1`), name,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		ddl, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(ddl)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		_, err = s.db.Exec(s.rebind(
			`INSERT INTO schema_migrations (name, applied_at) VALUES ($1, $2)`),
			name, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		log.Printf("[storage] applied migration: %s", name)
	}
	return nil
}

// EnsureAdminUser 播种管理员账号：邮箱不存在时创建，存在则不动
// 工厂单例保证进程内只执行一次
func (s *Store) EnsureAdminUser(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	ctx := context.Background()
	existing, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &model.User{
		ID:           auth.NewID(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.UserRoleAdmin,
		Entitled:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	log.Printf("[storage] seeded admin user: %s (%s)", email, admin.ID)
	return nil
}

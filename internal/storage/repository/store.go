// Package repository 数据库无关的关系型存储实现
//
// 通过 dbutil.Dialect 接口屏蔽 PostgreSQL/SQLite 的 SQL 差异，
// 所有 SQL 以 PostgreSQL 风格编写，运行时由 Dialect.Rebind() 转换。
// 实现 storage.DataStore 接口。
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"shangan/internal/storage"
	"shangan/internal/storage/dbutil"
	pgdriver "shangan/internal/storage/driver/postgres"
)

func init() {
	storage.RegisterDriver(storage.DriverPG, func(opts storage.Options) (storage.DataStore, error) {
		return OpenPostgres(opts)
	})
}

// Store 关系型存储
type Store struct {
	db      *sql.DB
	dialect dbutil.Dialect
}

var _ storage.DataStore = (*Store)(nil)

// NewStore 从已有连接创建存储（不建表、不播种，测试和工具使用）
func NewStore(db *sql.DB, dialect dbutil.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// OpenPostgres 打开 PostgreSQL 后端：连接、Schema 引导、管理员播种
func OpenPostgres(opts storage.Options) (*Store, error) {
	db, err := pgdriver.Open(opts.DatabaseURL)
	if err != nil {
		return nil, err
	}
	s := NewStore(db, pgdriver.NewDialect())
	if err := s.Bootstrap(opts.MigrationsDir); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres bootstrap failed: %w", err)
	}
	if err := s.EnsureAdminUser(opts.AdminEmail, opts.AdminPassword); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed admin user failed: %w", err)
	}
	return s, nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	return s.db.Close()
}

// DB 返回底层数据库连接（仅用于测试）
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect 返回当前方言
func (s *Store) Dialect() dbutil.Dialect {
	return s.dialect
}

// rebind 快捷方法：将 PG 风格 SQL 转换为当前方言
func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// marshalTags 序列化标签列（PostgreSQL 存 JSONB，SQLite 存 JSON 文本）
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(b), nil
}

// unmarshalTags 反序列化标签列，NULL/空值归一为空切片
func unmarshalTags(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

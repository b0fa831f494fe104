// Package jsonstore JSON 文件存储实现
//
// 本地开发/降级后端：每个实体集合对应数据目录下的一个 JSON 数组文档。
// 每次读取都重新解析文件，每次写入都重写整个文档。
// 进程内用读写锁串行化读-改-写，跨进程无文件锁 —— 这是该后端
// 已知的一致性局限，生产环境必须使用关系型后端。
package jsonstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
	"shangan/internal/storage"
)

func init() {
	storage.RegisterDriver(storage.DriverJSON, func(opts storage.Options) (storage.DataStore, error) {
		return Open(opts.DataDir, opts.AdminEmail, opts.AdminPassword)
	})
}

// 集合文件名
const (
	fileUsers      = "users.json"
	fileSessions   = "sessions.json"
	fileInvites    = "invites.json"
	fileJobs       = "jobs.json"
	fileJobActions = "job-actions.json"
)

// Store JSON 文件存储
type Store struct {
	dir string
	mu  sync.RWMutex
}

var _ storage.DataStore = (*Store)(nil)

// Open 打开 JSON 后端：建目录、初始化集合文档、播种管理员与示例岗位
func Open(dir, adminEmail, adminPassword string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{dir: dir}

	// 缺失的集合文档补齐为初始内容
	if err := ensureFile(s.path(fileUsers), []*model.User{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.path(fileSessions), []*model.Session{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.path(fileInvites), []*model.Invite{}); err != nil {
		return nil, err
	}
	if err := ensureFile(s.path(fileJobs), defaultJobs()); err != nil {
		return nil, err
	}
	if err := ensureFile(s.path(fileJobActions), []*model.JobAction{}); err != nil {
		return nil, err
	}

	if err := s.ensureAdminUser(adminEmail, adminPassword); err != nil {
		return nil, err
	}
	return s, nil
}

// Close 无持久连接可关闭
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// ensureFile 文件不存在或损坏时写入回退内容
func ensureFile[T any](path string, fallback []T) error {
	if _, err := readJSON[T](path); err == nil {
		return nil
	}
	return writeJSON(path, fallback)
}

// readJSON 每次调用都重新解析文档，不做内存缓存
func readJSON[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// writeJSON 整体重写文档
func writeJSON[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ensureAdminUser 播种管理员账号：邮箱不存在时追加，存在则不动
func (s *Store) ensureAdminUser(email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readJSON[*model.User](s.path(fileUsers))
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == email {
			return nil
		}
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
	if err := writeJSON(s.path(fileUsers), append(users, admin)); err != nil {
		return err
	}
	log.Printf("[storage] seeded admin user: %s (%s)", email, admin.ID)
	return nil
}

package jsonstore

import (
	"context"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// ==================== 用户 ====================

// CreateUser 创建用户；邮箱重复返回 storage.ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readJSON[*model.User](s.path(fileUsers))
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	return writeJSON(s.path(fileUsers), append(users, user))
}

// GetUserByEmail 按邮箱查询；不存在返回 (nil, nil)
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := readJSON[*model.User](s.path(fileUsers))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetUserByID 按 ID 查询；不存在返回 (nil, nil)
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := readJSON[*model.User](s.path(fileUsers))
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// ListUsers 列出全部用户
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return readJSON[*model.User](s.path(fileUsers))
}

// UpdateUserEntitled 修改授权标志；用户不存在返回 storage.ErrNotFound
func (s *Store) UpdateUserEntitled(ctx context.Context, userID string, entitled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readJSON[*model.User](s.path(fileUsers))
	if err != nil {
		return err
	}
	found := false
	for _, u := range users {
		if u.ID == userID {
			u.Entitled = entitled
			found = true
		}
	}
	if !found {
		return storage.ErrNotFound
	}
	return writeJSON(s.path(fileUsers), users)
}

package repository

import (
	"context"
	"database/sql"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// CreateUser 创建用户，邮箱唯一键冲突映射为 storage.ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO users (id, email, password_hash, role, entitled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`),
		user.ID, user.Email, user.PasswordHash, user.Role, user.Entitled, user.CreatedAt.UTC(),
	)
	if err != nil && s.dialect.IsUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	return err
}

// GetUserByEmail 通过邮箱查找用户，不存在返回 (nil, nil)
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, email, password_hash, role, entitled, created_at
		 FROM users WHERE email = $1`), email))
}

// GetUserByID 通过 ID 查找用户，不存在返回 (nil, nil)
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, email, password_hash, role, entitled, created_at
		 FROM users WHERE id = $1`), id))
}

func (s *Store) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash,
		&user.Role, &user.Entitled, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

// ListUsers 列出所有用户，按注册时间倒序
func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, password_hash, role, entitled, created_at
		 FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u := &model.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash,
			&u.Role, &u.Entitled, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserEntitled 修改授权标志，用户不存在返回 storage.ErrNotFound
func (s *Store) UpdateUserEntitled(ctx context.Context, userID string, entitled bool) error {
	res, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE users SET entitled = $1 WHERE id = $2`), entitled, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

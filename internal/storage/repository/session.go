package repository

import (
	"context"
	"database/sql"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// CreateSession 创建会话，ID 由存储层生成
func (s *Store) CreateSession(ctx context.Context, userID string, expiresAt time.Time) (*model.Session, error) {
	sess := &model.Session{
		ID:        auth.NewID(),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`),
		sess.ID, sess.UserID, sess.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession 查找会话，不存在返回 (nil, nil)
func (s *Store) GetSession(ctx context.Context, id string) (*model.Session, error) {
	sess := &model.Session{}
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT id, user_id, expires_at FROM sessions WHERE id = $1`), id,
	).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// DeleteSession 删除会话，不存在时静默成功
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM sessions WHERE id = $1`), id)
	return err
}

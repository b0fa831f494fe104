package jsonstore

import (
	"context"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// ==================== 会话 ====================

// CreateSession 创建会话，ID 由存储层生成
func (s *Store) CreateSession(ctx context.Context, userID string, expiresAt time.Time) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := readJSON[*model.Session](s.path(fileSessions))
	if err != nil {
		return nil, err
	}
	session := &model.Session{
		ID:        auth.NewID(),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}
	if err := writeJSON(s.path(fileSessions), append(sessions, session)); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession 按 ID 查询；不存在返回 (nil, nil)
func (s *Store) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions, err := readJSON[*model.Session](s.path(fileSessions))
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		if session.ID == id {
			return session, nil
		}
	}
	return nil, nil
}

// DeleteSession 删除会话；不存在时为无操作
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := readJSON[*model.Session](s.path(fileSessions))
	if err != nil {
		return err
	}
	next := sessions[:0:0]
	for _, session := range sessions {
		if session.ID != id {
			next = append(next, session)
		}
	}
	return writeJSON(s.path(fileSessions), next)
}

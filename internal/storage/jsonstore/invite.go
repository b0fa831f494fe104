package jsonstore

import (
	"context"
	"time"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// ==================== 邀请码 ====================

// CreateInvite 创建邀请码；码重复返回 storage.ErrDuplicate
func (s *Store) CreateInvite(ctx context.Context, invite *model.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	invites, err := readJSON[*model.Invite](s.path(fileInvites))
	if err != nil {
		return err
	}
	for _, inv := range invites {
		if inv.Code == invite.Code {
			return storage.ErrDuplicate
		}
	}
	return writeJSON(s.path(fileInvites), append(invites, invite))
}

// GetInvite 按码查询；不存在返回 (nil, nil)
func (s *Store) GetInvite(ctx context.Context, code string) (*model.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	invites, err := readJSON[*model.Invite](s.path(fileInvites))
	if err != nil {
		return nil, err
	}
	for _, inv := range invites {
		if inv.Code == code {
			return inv, nil
		}
	}
	return nil, nil
}

// UseInvite 核销邀请码
// 整个读-改-写在写锁内完成，保证进程内并发核销至多一次成功
func (s *Store) UseInvite(ctx context.Context, code string) (*model.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invites, err := readJSON[*model.Invite](s.path(fileInvites))
	if err != nil {
		return nil, err
	}
	var used *model.Invite
	for _, inv := range invites {
		if inv.Code == code && !inv.Used {
			now := time.Now().UTC()
			inv.Used = true
			inv.UsedAt = &now
			used = inv
			break
		}
	}
	if used == nil {
		return nil, nil
	}
	if err := writeJSON(s.path(fileInvites), invites); err != nil {
		return nil, err
	}
	return used, nil
}

// ListInvites 列出全部邀请码
func (s *Store) ListInvites(ctx context.Context) ([]*model.Invite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return readJSON[*model.Invite](s.path(fileInvites))
}

package jsonstore

import (
	"context"
	"time"

	"shangan/internal/model"
)

// ==================== 岗位操作记录 ====================

// ListJobActions 列出指定用户的全部操作记录
func (s *Store) ListJobActions(ctx context.Context, userID string) ([]*model.JobAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	actions, err := readJSON[*model.JobAction](s.path(fileJobActions))
	if err != nil {
		return nil, err
	}
	result := []*model.JobAction{}
	for _, action := range actions {
		if action.UserID == userID {
			result = append(result, action)
		}
	}
	return result, nil
}

// UpsertJobAction 按 (userID, jobID) 替换记录，新记录插在文档头部
func (s *Store) UpsertJobAction(ctx context.Context, action *model.JobAction) (*model.JobAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := readJSON[*model.JobAction](s.path(fileJobActions))
	if err != nil {
		return nil, err
	}
	stored := *action
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	} else {
		stored.UpdatedAt = stored.UpdatedAt.UTC()
	}
	next := []*model.JobAction{&stored}
	for _, item := range actions {
		if item.UserID == action.UserID && item.JobID == action.JobID {
			continue
		}
		next = append(next, item)
	}
	if err := writeJSON(s.path(fileJobActions), next); err != nil {
		return nil, err
	}
	return &stored, nil
}

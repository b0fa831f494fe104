package repository

import (
	"context"
	"time"

	"shangan/internal/model"
)

// ListJobActions 列出某用户的全部岗位操作记录，按更新时间倒序
func (s *Store) ListJobActions(ctx context.Context, userID string) ([]*model.JobAction, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT user_id, job_id, applied, note, updated_at
		 FROM job_actions WHERE user_id = $1 ORDER BY updated_at DESC`), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*model.JobAction
	for rows.Next() {
		a := &model.JobAction{}
		if err := rows.Scan(&a.UserID, &a.JobID, &a.Applied, &a.Note, &a.UpdatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// UpsertJobAction 按复合主键 (user_id, job_id) 原子插入或更新
// 单条 ON CONFLICT 语句，不做 delete-then-insert，重复调用幂等
func (s *Store) UpsertJobAction(ctx context.Context, action *model.JobAction) (*model.JobAction, error) {
	if action.UpdatedAt.IsZero() {
		action.UpdatedAt = time.Now()
	}
	conflict := s.dialect.UpsertConflict(
		[]string{"user_id", "job_id"},
		[]string{
			"applied = EXCLUDED.applied",
			"note = EXCLUDED.note",
			"updated_at = EXCLUDED.updated_at",
		},
	)
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO job_actions (user_id, job_id, applied, note, updated_at)
		 VALUES ($1, $2, $3, $4, $5) `+conflict),
		action.UserID, action.JobID, action.Applied, action.Note, action.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, err
	}
	result := *action
	result.UpdatedAt = action.UpdatedAt.UTC()
	return &result, nil
}

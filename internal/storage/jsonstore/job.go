package jsonstore

import (
	"context"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// ==================== 岗位 ====================

// ListJobs 列出全部岗位，返回前补齐缺省字段
func (s *Store) ListJobs(ctx context.Context) ([]*model.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs, err := readJSON[*model.Job](s.path(fileJobs))
	if err != nil {
		return nil, err
	}
	for _, job := range jobs {
		job.Normalize()
	}
	return jobs, nil
}

// CreateJob 创建岗位，新岗位插在文档头部；ID 重复返回 storage.ErrDuplicate
func (s *Store) CreateJob(ctx context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readJSON[*model.Job](s.path(fileJobs))
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if j.ID == job.ID {
			return storage.ErrDuplicate
		}
	}
	job.Normalize()
	return writeJSON(s.path(fileJobs), append([]*model.Job{job}, jobs...))
}

// DeleteJob 删除岗位，同时清理关联的操作记录（对齐关系型后端的级联删除）
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := readJSON[*model.Job](s.path(fileJobs))
	if err != nil {
		return err
	}
	next := jobs[:0:0]
	for _, job := range jobs {
		if job.ID != jobID {
			next = append(next, job)
		}
	}
	if err := writeJSON(s.path(fileJobs), next); err != nil {
		return err
	}

	actions, err := readJSON[*model.JobAction](s.path(fileJobActions))
	if err != nil {
		return err
	}
	kept := actions[:0:0]
	for _, action := range actions {
		if action.JobID != jobID {
			kept = append(kept, action)
		}
	}
	return writeJSON(s.path(fileJobActions), kept)
}

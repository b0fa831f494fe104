package repository

import (
	"context"

	"shangan/internal/model"
	"shangan/internal/storage"
)

const jobColumns = `id, title, company, city, district, salary, tags, published_at,
	link, status, category, region, province, views, apply_link, source_link`

// ListJobs 列出全部岗位（发布时间倒序），返回前统一归一化
func (s *Store) ListJobs(ctx context.Context) ([]*model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY published_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*model.Job
	for rows.Next() {
		job := &model.Job{}
		var rawTags []byte
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.City, &job.District,
			&job.Salary, &rawTags, &job.PublishedAt, &job.Link, &job.Status,
			&job.Category, &job.Region, &job.Province, &job.Views,
			&job.ApplyLink, &job.SourceLink); err != nil {
			return nil, err
		}
		if job.Tags, err = unmarshalTags(rawTags); err != nil {
			return nil, err
		}
		job.Normalize()
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// CreateJob 创建岗位，入库前归一化，ID 重复映射为 storage.ErrDuplicate
func (s *Store) CreateJob(ctx context.Context, job *model.Job) error {
	job.Normalize()
	tags, err := marshalTags(job.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`),
		job.ID, job.Title, job.Company, job.City, job.District, job.Salary, tags,
		job.PublishedAt.UTC(), job.Link, job.Status, job.Category, job.Region,
		job.Province, job.Views, job.ApplyLink, job.SourceLink,
	)
	if err != nil && s.dialect.IsUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	return err
}

// DeleteJob 删除岗位，关联的 job_actions 由外键级联清除
func (s *Store) DeleteJob(ctx context.Context, jobID string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`DELETE FROM jobs WHERE id = $1`), jobID)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// CreateInvite 创建邀请码，码重复映射为 storage.ErrDuplicate
func (s *Store) CreateInvite(ctx context.Context, invite *model.Invite) error {
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO invites (code, used, created_at, used_at, created_by)
		 VALUES ($1, $2, $3, $4, $5)`),
		invite.Code, invite.Used, invite.CreatedAt.UTC(),
		nullableTime(invite.UsedAt), nullableString(invite.CreatedBy),
	)
	if err != nil && s.dialect.IsUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	return err
}

// GetInvite 查找邀请码，不存在返回 (nil, nil)
func (s *Store) GetInvite(ctx context.Context, code string) (*model.Invite, error) {
	return scanInvite(s.db.QueryRowContext(ctx, s.rebind(
		`SELECT code, used, created_at, used_at, created_by
		 FROM invites WHERE code = $1`), code))
}

// UseInvite 原子核销：单条条件更新，并发争用同一码时仅一个请求命中
// 码不存在或已核销返回 (nil, nil)
func (s *Store) UseInvite(ctx context.Context, code string) (*model.Invite, error) {
	usedAt := time.Now().UTC()
	inv, err := scanInvite(s.db.QueryRowContext(ctx, s.rebind(
		`UPDATE invites SET used = TRUE, used_at = $1
		 WHERE code = $2 AND used = FALSE
		 RETURNING code, used, created_at, used_at, created_by`),
		usedAt, code))
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvites 列出所有邀请码，按创建时间倒序
func (s *Store) ListInvites(ctx context.Context) ([]*model.Invite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, used, created_at, used_at, created_by
		 FROM invites ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []*model.Invite
	for rows.Next() {
		inv := &model.Invite{}
		var usedAt sql.NullTime
		var createdBy sql.NullString
		if err := rows.Scan(&inv.Code, &inv.Used, &inv.CreatedAt, &usedAt, &createdBy); err != nil {
			return nil, err
		}
		if usedAt.Valid {
			t := usedAt.Time
			inv.UsedAt = &t
		}
		inv.CreatedBy = createdBy.String
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func scanInvite(row *sql.Row) (*model.Invite, error) {
	inv := &model.Invite{}
	var usedAt sql.NullTime
	var createdBy sql.NullString
	err := row.Scan(&inv.Code, &inv.Used, &inv.CreatedAt, &usedAt, &createdBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		t := usedAt.Time
		inv.UsedAt = &t
	}
	inv.CreatedBy = createdBy.String
	return inv, nil
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Package repository SQLite 集成测试
//
// 使用 SQLite 内存数据库验证 repository 层所有存储接口的正确性。
// 无需外部数据库依赖，可在任何环境下运行。
package repository

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
	"shangan/internal/storage"
	"shangan/internal/storage/dbutil"
	sqlitedriver "shangan/internal/storage/driver/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore 创建用于测试的 SQLite 内存数据库 Store
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	// :memory: 下每个新连接是独立的空库，必须收敛到单连接
	db.SetMaxOpenConns(1)
	dialect := sqlitedriver.NewDialect()
	require.NoError(t, dialect.AutoMigrate(db))
	store := NewStore(db, dialect)
	t.Cleanup(func() { store.Close() })
	return store
}

// newTestUser 插入一个普通用户并返回
func newTestUser(t *testing.T, s *Store, email string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           auth.NewID(),
		Email:        email,
		PasswordHash: "hash",
		Role:         model.UserRoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// newTestJob 插入一个岗位并返回
func newTestJob(t *testing.T, s *Store, title string) *model.Job {
	t.Helper()
	job := &model.Job{
		ID:          auth.NewID(),
		Title:       title,
		Company:     "市直机关",
		City:        "上海",
		Salary:      "10-14k",
		PublishedAt: time.Now().UTC(),
		Link:        "https://example.com/job",
		Status:      model.JobStatusOpen,
	}
	require.NoError(t, s.CreateJob(context.Background(), job))
	return job
}

// ============================================================================
// Dialect 基础测试
// ============================================================================

func TestDialectRebind(t *testing.T) {
	d := sqlitedriver.NewDialect()
	assert.Equal(t, dbutil.DriverSQLite, d.DriverType())
	assert.Equal(t, "SELECT * FROM t WHERE id = ? AND name = ?",
		d.Rebind("SELECT * FROM t WHERE id = $1 AND name = $2"))
}

func TestDialectUpsertClause(t *testing.T) {
	d := sqlitedriver.NewDialect()
	clause := d.UpsertConflict(
		[]string{"user_id", "job_id"},
		[]string{"applied = EXCLUDED.applied"},
	)
	assert.Equal(t, "ON CONFLICT (user_id, job_id) DO UPDATE SET applied = EXCLUDED.applied", clause)
}

// ============================================================================
// 用户
// ============================================================================

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "member@example.com")

	// 邮箱唯一约束映射为 ErrDuplicate
	dup := &model.User{
		ID:        auth.NewID(),
		Email:     "member@example.com",
		CreatedAt: time.Now().UTC(),
	}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), storage.ErrDuplicate)

	got, err := s.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, model.UserRoleUser, got.Role)
	assert.False(t, got.Entitled)

	// 不存在返回 (nil, nil)
	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.UpdateUserEntitled(ctx, user.ID, true))
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Entitled)

	assert.ErrorIs(t, s.UpdateUserEntitled(ctx, "no-such-id", true), storage.ErrNotFound)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

// ============================================================================
// 会话
// ============================================================================

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "u1@example.com")
	expires := time.Now().Add(time.Hour).UTC()

	session, err := s.CreateSession(ctx, user.ID, expires)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)
	assert.WithinDuration(t, expires, got.ExpiresAt, time.Second)

	require.NoError(t, s.DeleteSession(ctx, session.ID))
	got, err = s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// 重复删除为无操作
	require.NoError(t, s.DeleteSession(ctx, session.ID))
}

// ============================================================================
// 邀请码
// ============================================================================

func TestInviteUseOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	invite := &model.Invite{
		Code:      auth.NewInviteCode(),
		CreatedAt: time.Now().UTC(),
		CreatedBy: "admin-1",
	}
	require.NoError(t, s.CreateInvite(ctx, invite))
	assert.ErrorIs(t, s.CreateInvite(ctx, invite), storage.ErrDuplicate)

	got, err := s.GetInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Used)
	assert.Nil(t, got.UsedAt)

	used, err := s.UseInvite(ctx, invite.Code)
	require.NoError(t, err)
	require.NotNil(t, used)
	assert.True(t, used.Used)
	require.NotNil(t, used.UsedAt)

	// 二次核销与未知码都返回 (nil, nil)
	again, err := s.UseInvite(ctx, invite.Code)
	require.NoError(t, err)
	assert.Nil(t, again)
	none, err := s.UseInvite(ctx, "no-such-code")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInviteConcurrentUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	code := auth.NewInviteCode()
	require.NoError(t, s.CreateInvite(ctx, &model.Invite{
		Code:      code,
		CreatedAt: time.Now().UTC(),
	}))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan *model.Invite, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := s.UseInvite(ctx, code)
			assert.NoError(t, err)
			results <- inv
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for inv := range results {
		if inv != nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "并发核销同一码只能成功一次")
}

func TestListInvites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateInvite(ctx, &model.Invite{
			Code:      auth.NewInviteCode(),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second).UTC(),
			CreatedBy: "admin-1",
		}))
	}

	invites, err := s.ListInvites(ctx)
	require.NoError(t, err)
	require.Len(t, invites, 3)
	// 创建时间倒序
	assert.True(t, !invites[0].CreatedAt.Before(invites[1].CreatedAt))
	assert.True(t, !invites[1].CreatedAt.Before(invites[2].CreatedAt))
}

// ============================================================================
// 岗位
// ============================================================================

func TestJobCreateListNormalize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := newTestJob(t, s, "数据管理岗")
	assert.ErrorIs(t, s.CreateJob(ctx, job), storage.ErrDuplicate)

	jobs, err := s.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	got := jobs[0]
	assert.Equal(t, job.ID, got.ID)
	// 缺省字段在读取路径补齐
	assert.Equal(t, model.DefaultCategory, got.Category)
	assert.Equal(t, model.DefaultRegion, got.Region)
	assert.Equal(t, "上海", got.Province)
	assert.Equal(t, model.DefaultDistrict, got.District)
	assert.Equal(t, job.Link, got.ApplyLink)
	assert.Equal(t, job.Link, got.SourceLink)
	assert.Equal(t, []string{}, got.Tags)
}

func TestJobTagsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	job := &model.Job{
		ID:          auth.NewID(),
		Title:       "宣传干事",
		Company:     "区委宣传部",
		City:        "广州",
		Salary:      "8-12k",
		Tags:        []string{"写作能力", "新媒体"},
		PublishedAt: time.Now().UTC(),
		Link:        "https://example.com/pr",
		Status:      model.JobStatusOpen,
	}
	require.NoError(t, s.CreateJob(ctx, job))

	jobs, err := s.ListJobs(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, []string{"写作能力", "新媒体"}, jobs[0].Tags)
}

func TestDeleteJobCascadesActions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "u1@example.com")
	job := newTestJob(t, s, "综合岗")

	_, err := s.UpsertJobAction(ctx, &model.JobAction{
		UserID:  user.ID,
		JobID:   job.ID,
		Applied: true,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteJob(ctx, job.ID))

	jobs, err := s.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs)

	actions, err := s.ListJobActions(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

// ============================================================================
// 岗位操作记录
// ============================================================================

func TestJobActionUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := newTestUser(t, s, "u1@example.com")
	job := newTestJob(t, s, "综合岗")

	first, err := s.UpsertJobAction(ctx, &model.JobAction{
		UserID: user.ID,
		JobID:  job.ID,
		Note:   "先收藏",
	})
	require.NoError(t, err)
	assert.False(t, first.UpdatedAt.IsZero())

	// 同键再次写入是替换而非追加
	second, err := s.UpsertJobAction(ctx, &model.JobAction{
		UserID:  user.ID,
		JobID:   job.ID,
		Applied: true,
		Note:    "已投递",
	})
	require.NoError(t, err)
	assert.True(t, second.Applied)

	actions, err := s.ListJobActions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.True(t, actions[0].Applied)
	assert.Equal(t, "已投递", actions[0].Note)

	// 其他用户不可见
	other, err := s.ListJobActions(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Empty(t, other)
}

// ============================================================================
// Schema 引导与播种
// ============================================================================

func TestBootstrapWithMigrations(t *testing.T) {
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	s := NewStore(db, sqlitedriver.NewDialect())
	t.Cleanup(func() { s.Close() })

	dir := t.TempDir()
	ddl := "CREATE TABLE IF NOT EXISTS users (\n" +
		"  id TEXT PRIMARY KEY,\n" +
		"  email TEXT UNIQUE NOT NULL,\n" +
		"  password_hash TEXT NOT NULL,\n" +
		"  role TEXT NOT NULL,\n" +
		"  entitled INTEGER NOT NULL DEFAULT 0,\n" +
		"  created_at DATETIME NOT NULL\n" +
		");"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_users.sql"), []byte(ddl), 0o644))

	require.NoError(t, s.Bootstrap(dir))
	// 重放幂等
	require.NoError(t, s.Bootstrap(dir))

	var applied int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(1) FROM schema_migrations WHERE name = '001_users.sql'`,
	).Scan(&applied))
	assert.Equal(t, 1, applied)

	// 脚本建出的表可用
	newTestUser(t, s, "u1@example.com")
}

func TestBootstrapFallsBackToAutoMigrate(t *testing.T) {
	db, err := sqlitedriver.Open(":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	s := NewStore(db, sqlitedriver.NewDialect())
	t.Cleanup(func() { s.Close() })

	// 迁移目录不存在时回退到内联 DDL
	require.NoError(t, s.Bootstrap(filepath.Join(t.TempDir(), "missing")))
	newTestUser(t, s, "u1@example.com")
}

func TestEnsureAdminUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureAdminUser("admin@shangan.ai", "admin123456"))
	// 幂等：已存在时不重复创建
	require.NoError(t, s.EnsureAdminUser("admin@shangan.ai", "another-password"))

	admin, err := s.GetUserByEmail(ctx, "admin@shangan.ai")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, model.UserRoleAdmin, admin.Role)
	assert.True(t, admin.Entitled)
	assert.True(t, auth.CheckPassword("admin123456", admin.PasswordHash))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	// 未配置管理员时跳过播种
	require.NoError(t, s.EnsureAdminUser("", ""))
}

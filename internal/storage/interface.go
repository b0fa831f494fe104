// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：repository/（关系型）、jsonstore/（JSON 文件）
//   - 两个后端对调用方完全等价，切换后端不得改变任何可见行为
package storage

import (
	"context"
	"time"

	"shangan/internal/model"
)

// UserStore 用户存储接口
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	// UpdateUserEntitled 修改授权标志，仅管理员操作调用
	UpdateUserEntitled(ctx context.Context, userID string, entitled bool) error
}

// SessionStore 会话存储接口
type SessionStore interface {
	CreateSession(ctx context.Context, userID string, expiresAt time.Time) (*model.Session, error)
	GetSession(ctx context.Context, id string) (*model.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

// InviteStore 邀请码存储接口
type InviteStore interface {
	CreateInvite(ctx context.Context, invite *model.Invite) error
	GetInvite(ctx context.Context, code string) (*model.Invite, error)
	// UseInvite 原子地核销邀请码：仅当 used=false 时置为 used=true 并返回核销后的记录；
	// 码不存在或已核销时返回 (nil, nil)。并发核销同一码时至多一次成功。
	UseInvite(ctx context.Context, code string) (*model.Invite, error)
	ListInvites(ctx context.Context) ([]*model.Invite, error)
}

// JobStore 岗位存储接口
// 所有读取路径返回前必须应用 model.Job.Normalize
type JobStore interface {
	ListJobs(ctx context.Context) ([]*model.Job, error)
	CreateJob(ctx context.Context, job *model.Job) error
	DeleteJob(ctx context.Context, jobID string) error
}

// JobActionStore 岗位操作记录存储接口
type JobActionStore interface {
	ListJobActions(ctx context.Context, userID string) ([]*model.JobAction, error)
	// UpsertJobAction 按 (userID, jobID) 原子插入或更新，重复调用幂等
	UpsertJobAction(ctx context.Context, action *model.JobAction) (*model.JobAction, error)
}

// DataStore 持久化存储组合接口
type DataStore interface {
	UserStore
	SessionStore
	InviteStore
	JobStore
	JobActionStore
	Close() error
}

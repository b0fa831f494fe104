// Package model 领域模型
//
// 所有实体在存储边界内外使用同一套类型：
//   - JSON 存储直接序列化这些结构体（时间字段为 RFC3339）
//   - 关系型存储在映射层完成 timestamptz <-> time.Time 转换
package model

import "time"

// UserRole 用户角色
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User 用户
// entitled 控制岗位浏览权限，仅由管理员操作修改
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"passwordHash" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	Entitled     bool      `json:"entitled" db:"entitled"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// CanAccess 岗位浏览权限判定：已授权或管理员
func (u *User) CanAccess() bool {
	return u.Entitled || u.IsAdmin()
}

// Session 会话：cookie 中引用的有时限凭证
// 过期会话在读取时惰性删除，无后台清理
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

// Expired 是否已过期
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}

// Invite 邀请码：一次性注册凭证
// used 仅能 false -> true 变迁一次，由存储层原子完成
type Invite struct {
	Code      string     `json:"code" db:"code"`
	Used      bool       `json:"used" db:"used"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UsedAt    *time.Time `json:"usedAt,omitempty" db:"used_at"`
	CreatedBy string     `json:"createdBy,omitempty" db:"created_by"`
}

// JobStatus 岗位状态
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// Job 岗位
type Job struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Company     string    `json:"company" db:"company"`
	City        string    `json:"city" db:"city"`
	District    string    `json:"district" db:"district"`
	Salary      string    `json:"salary" db:"salary"`
	Tags        []string  `json:"tags" db:"tags"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
	Link        string    `json:"link" db:"link"`
	Status      JobStatus `json:"status" db:"status"`
	Category    string    `json:"category" db:"category"`
	Region      string    `json:"region" db:"region"`
	Province    string    `json:"province" db:"province"`
	Views       int       `json:"views" db:"views"`
	ApplyLink   string    `json:"applyLink" db:"apply_link"`
	SourceLink  string    `json:"sourceLink" db:"source_link"`
}

// 岗位字段缺省值
const (
	DefaultCategory = "事业单位"
	DefaultRegion   = "全国"
	DefaultDistrict = "全市"
	DefaultProvince = "未知"
	DefaultLink     = "#"
)

// Normalize 补齐岗位缺省字段
// 两个存储后端的每条读取路径都必须经过此处，保证调用方看到一致的数据
func (j *Job) Normalize() {
	if j.Category == "" {
		j.Category = DefaultCategory
	}
	if j.Region == "" {
		j.Region = DefaultRegion
	}
	if j.Province == "" {
		if j.City != "" {
			j.Province = j.City
		} else {
			j.Province = DefaultProvince
		}
	}
	if j.District == "" {
		j.District = DefaultDistrict
	}
	if j.Views < 0 {
		j.Views = 0
	}
	if j.Tags == nil {
		j.Tags = []string{}
	}
	if j.ApplyLink == "" {
		j.ApplyLink = j.Link
	}
	if j.SourceLink == "" {
		j.SourceLink = j.Link
	}
	if j.ApplyLink == "" {
		j.ApplyLink = DefaultLink
	}
	if j.SourceLink == "" {
		j.SourceLink = DefaultLink
	}
}

// JobAction 用户与岗位的关系记录：投递状态 + 备注
// (UserID, JobID) 为复合主键，写入始终是 upsert
type JobAction struct {
	UserID    string    `json:"userId" db:"user_id"`
	JobID     string    `json:"jobId" db:"job_id"`
	Applied   bool      `json:"applied" db:"applied"`
	Note      string    `json:"note" db:"note"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shangan/internal/model"
	"shangan/internal/storage"
)

// SessionTTL 会话有效期：7 天，创建后不续期
const SessionTTL = 7 * 24 * time.Hour

var (
	// ErrNotLoggedIn 无会话
	ErrNotLoggedIn = errors.New("未登录")
	// ErrForbidden 权限不足
	ErrForbidden = errors.New("无权限")
)

// Sessions 会话管理器：绑定存储句柄与 cookie 配置
type Sessions struct {
	store storage.DataStore
	cfg   CookieConfig
}

// NewSessions 创建会话管理器
func NewSessions(store storage.DataStore, cfg CookieConfig) *Sessions {
	return &Sessions{store: store, cfg: cfg}
}

// Create 为用户创建一个自当前时刻起 7 天有效的会话
func (s *Sessions) Create(ctx context.Context, userID string) (*model.Session, error) {
	return s.store.CreateSession(ctx, userID, time.Now().Add(SessionTTL))
}

// Issue 创建会话并下发 cookie
func (s *Sessions) Issue(ctx context.Context, w http.ResponseWriter, userID string) (*model.Session, error) {
	sess, err := s.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := SetSessionCookie(w, s.cfg, sess.ID, sess.ExpiresAt); err != nil {
		return nil, err
	}
	return sess, nil
}

// Revoke 登出：删除会话行并清空 cookie
// cookie 缺失或验签失败时仅清 cookie，不报错
func (s *Sessions) Revoke(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id := sessionIDFromRequest(r, s.cfg); id != "" {
		if err := s.store.DeleteSession(ctx, id); err != nil {
			return err
		}
	}
	ClearSessionCookie(w, s.cfg)
	return nil
}

// CurrentUser 解析请求中的会话 cookie 并返回当前用户
//
// 以下情况一律返回 (nil, nil)，视为未登录：
//   - 无 cookie 或验签失败
//   - 会话行不存在
//   - 会话已过期（顺带惰性删除该行，无后台清理）
func (s *Sessions) CurrentUser(ctx context.Context, r *http.Request) (*model.User, error) {
	id := sessionIDFromRequest(r, s.cfg)
	if id == "" {
		return nil, nil
	}

	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}

	if sess.Expired(time.Now()) {
		if err := s.store.DeleteSession(ctx, sess.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.store.GetUserByID(ctx, sess.UserID)
}

// RequireAccess 岗位浏览门槛：已登录且（已授权或管理员）
func (s *Sessions) RequireAccess(ctx context.Context, r *http.Request) (*model.User, error) {
	user, err := s.CurrentUser(ctx, r)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	if !user.CanAccess() {
		return nil, ErrForbidden
	}
	return user, nil
}

// RequireAdmin 管理员门槛
func (s *Sessions) RequireAdmin(ctx context.Context, r *http.Request) (*model.User, error) {
	user, err := s.CurrentUser(ctx, r)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}

package server

import (
	"net/http"
	"strings"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// registerRequest 注册请求体
type registerRequest struct {
	InviteCode string `json:"inviteCode"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// loginRequest 登录请求体
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userView 用户的对外表示，不含密码哈希
type userView struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Role      model.UserRole `json:"role"`
	Entitled  bool           `json:"entitled"`
	CreatedAt time.Time      `json:"createdAt"`
}

func newUserView(u *model.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Entitled:  u.Entitled,
		CreatedAt: u.CreatedAt,
	}
}

// Register 邀请码注册
//
// 校验顺序是行为契约的一部分：
//  1. 三项必填，缺一 400
//  2. 邮箱已注册 409（此时邀请码未消耗）
//  3. 邀请码核销失败 403
//  4. 创建用户（role=user, entitled=false）并直接登录
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请填写完整信息")
		return
	}
	code := strings.TrimSpace(req.InviteCode)
	email := strings.TrimSpace(req.Email)
	if code == "" || email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "请填写完整信息")
		return
	}

	ctx := r.Context()
	existing, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if existing != nil {
		h.metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		writeMessage(w, http.StatusConflict, "该邮箱已注册")
		return
	}

	invite, err := h.store.UseInvite(ctx, code)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if invite == nil {
		h.metrics.RegistrationsTotal.WithLabelValues("bad_invite").Inc()
		writeMessage(w, http.StatusForbidden, "邀请码无效或已使用")
		return
	}
	h.metrics.InvitesRedeemed.Inc()

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("hash password failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
		return
	}
	user := &model.User{
		ID:           auth.NewID(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.UserRoleUser,
		Entitled:     false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		h.writeStoreError(w, err)
		return
	}

	if _, err := h.sessions.Issue(ctx, w, user.ID); err != nil {
		h.logger.WithError(err).Error("issue session failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
		return
	}
	h.metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	h.logger.WithUserID(user.ID).Info("user registered", "email", user.Email)
	writeOK(w)
}

// Login 登录
// 账号不存在与密码错误返回不同文案（与线上行为一致，保持可观测性）
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请输入邮箱与密码")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "请输入邮箱与密码")
		return
	}

	ctx := r.Context()
	user, err := h.store.GetUserByEmail(ctx, email)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if user == nil {
		h.metrics.LoginsTotal.WithLabelValues("no_account").Inc()
		writeMessage(w, http.StatusUnauthorized, "账号不存在")
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		writeMessage(w, http.StatusUnauthorized, "密码错误")
		return
	}

	if _, err := h.sessions.Issue(ctx, w, user.ID); err != nil {
		h.logger.WithError(err).Error("issue session failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
		return
	}
	h.metrics.LoginsTotal.WithLabelValues("ok").Inc()
	writeOK(w)
}

// Logout 登出，无论是否有有效会话都返回成功
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(r.Context(), w, r); err != nil {
		h.logger.WithError(err).Error("revoke session failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
		return
	}
	writeOK(w)
}

// Me 返回当前登录用户
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.CurrentUser(r.Context(), r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	if user == nil {
		writeMessage(w, http.StatusUnauthorized, "未登录")
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

// Package server 路由配置
//
// 路由规则：
//
// 健康检查:
//   - GET  /health  - 服务健康检查
//   - GET  /metrics - Prometheus 指标
//
// 认证 (Auth):
//   - POST /api/v1/auth/register - 邀请码注册
//   - POST /api/v1/auth/login    - 登录
//   - POST /api/v1/auth/logout   - 登出
//   - GET  /api/v1/auth/me       - 当前用户
//
// 岗位 (Job):
//   - GET  /api/v1/jobs              - 岗位列表（含调用者的投递状态）
//   - POST /api/v1/jobs/{id}/applied - 切换投递状态
//   - POST /api/v1/jobs/{id}/note    - 更新备注
//
// 管理 (Admin):
//   - POST   /api/v1/admin/invites             - 批量生成邀请码
//   - GET    /api/v1/admin/invites             - 邀请码列表
//   - GET    /api/v1/admin/users               - 用户列表
//   - POST   /api/v1/admin/users/{id}/entitled - 授权开关
//   - POST   /api/v1/admin/jobs                - 发布岗位
//   - DELETE /api/v1/admin/jobs/{id}           - 下架岗位
package server

import (
	"net/http"
)

// Router 返回配置好的 HTTP 路由
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	// 健康检查
	mux.HandleFunc("GET /health", h.Health)

	// Prometheus 指标端点
	mux.Handle("GET /metrics", h.metrics.HTTPHandler())

	// Auth 接口
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/v1/auth/me", h.Me)

	// Job 接口
	mux.HandleFunc("GET /api/v1/jobs", h.ListJobs)
	mux.HandleFunc("POST /api/v1/jobs/{id}/applied", h.ToggleApplied)
	mux.HandleFunc("POST /api/v1/jobs/{id}/note", h.UpdateNote)

	// Admin 接口
	mux.HandleFunc("POST /api/v1/admin/invites", h.CreateInvites)
	mux.HandleFunc("GET /api/v1/admin/invites", h.ListInvites)
	mux.HandleFunc("GET /api/v1/admin/users", h.ListUsers)
	mux.HandleFunc("POST /api/v1/admin/users/{id}/entitled", h.SetUserEntitled)
	mux.HandleFunc("POST /api/v1/admin/jobs", h.CreateJob)
	mux.HandleFunc("DELETE /api/v1/admin/jobs/{id}", h.DeleteJob)

	return h.instrument(mux)
}

// Health 健康检查
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

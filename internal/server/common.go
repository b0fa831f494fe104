// Package server 提供 HTTP API 处理器
//
// 本包实现会员制岗位站的 RESTful API，包括：
//   - 认证接口（注册、登录、登出、当前用户）
//   - 岗位浏览与投递状态维护
//   - 管理接口（邀请码、授权开关、岗位上下架）
//
// 文件组织：
//   - common.go: 通用工具函数和 Handler 定义
//   - handler.go: 路由配置与中间件
//   - auth.go: 认证相关接口
//   - jobs.go: 岗位相关接口
//   - admin.go: 管理相关接口
//   - metrics.go: Prometheus 指标
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"shangan/internal/auth"
	"shangan/internal/storage"
	"shangan/pkg/logging"
)

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，负责：
//   - 路由请求到对应的处理函数
//   - 管理存储层连接与会话管理器
type Handler struct {
	store    storage.DataStore
	sessions *auth.Sessions
	logger   *logging.Logger
	metrics  *Metrics
}

// NewHandler 创建 Handler 实例
func NewHandler(store storage.DataStore, sessions *auth.Sessions, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default("server")
	}
	return &Handler{
		store:    store,
		sessions: sessions,
		logger:   logger,
		metrics:  NewMetrics("shangan"),
	}
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeMessage 将提示信息以 JSON 格式写入 HTTP 响应
// 错误响应统一为 {"message": "..."} 结构
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeOK 成功响应 {"ok": true}
func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// decodeJSON 解析请求体，失败视为参数错误
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeAuthError 将会话层错误映射为 HTTP 状态码
//   - 未登录 -> 401
//   - 无权限 -> 403
//   - 其他   -> 500
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNotLoggedIn):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	default:
		h.logger.WithError(err).Error("session lookup failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
	}
}

// writeStoreError 存储层错误统一出口
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "记录不存在")
	case errors.Is(err, storage.ErrDuplicate):
		writeMessage(w, http.StatusConflict, "记录已存在")
	default:
		h.logger.WithError(err).Error("storage operation failed")
		writeMessage(w, http.StatusInternalServerError, "服务器错误")
	}
}

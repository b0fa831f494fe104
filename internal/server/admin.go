package server

import (
	"net/http"
	"strings"
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// CreateInvites 批量生成邀请码，count 最小为 1
func (h *Handler) CreateInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin, err := h.sessions.RequireAdmin(ctx, r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	count := req.Count
	if count < 1 {
		count = 1
	}

	invites := make([]*model.Invite, 0, count)
	for i := 0; i < count; i++ {
		invite := &model.Invite{
			Code:      auth.NewInviteCode(),
			Used:      false,
			CreatedAt: time.Now().UTC(),
			CreatedBy: admin.ID,
		}
		if err := h.store.CreateInvite(ctx, invite); err != nil {
			h.writeStoreError(w, err)
			return
		}
		h.metrics.InvitesCreated.Inc()
		invites = append(invites, invite)
	}
	h.logger.WithUserID(admin.ID).Info("invites created", "count", count)
	writeJSON(w, http.StatusOK, map[string]interface{}{"invites": invites})
}

// ListInvites 邀请码列表
func (h *Handler) ListInvites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := h.sessions.RequireAdmin(ctx, r); err != nil {
		h.writeAuthError(w, err)
		return
	}
	invites, err := h.store.ListInvites(ctx)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"invites": invites})
}

// ListUsers 用户列表（不含密码哈希）
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := h.sessions.RequireAdmin(ctx, r); err != nil {
		h.writeAuthError(w, err)
		return
	}
	users, err := h.store.ListUsers(ctx)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": views})
}

// SetUserEntitled 授权开关
func (h *Handler) SetUserEntitled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	admin, err := h.sessions.RequireAdmin(ctx, r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	userID := r.PathValue("id")
	if userID == "" {
		writeMessage(w, http.StatusBadRequest, "缺少用户标识")
		return
	}
	var req struct {
		Entitled bool `json:"entitled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	if err := h.store.UpdateUserEntitled(ctx, userID, req.Entitled); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.logger.WithUserID(admin.ID).Info("entitlement updated",
		"target", userID, "entitled", req.Entitled)
	writeOK(w)
}

// createJobRequest 发布岗位请求体
type createJobRequest struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	City    string `json:"city"`
	Salary  string `json:"salary"`
	Tags    string `json:"tags"` // 逗号分隔
	Link    string `json:"link"`
}

// CreateJob 发布岗位
// 派生字段与线上行为对齐：status=open、region=华东、province 取 city、views=0
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := h.sessions.RequireAdmin(ctx, r); err != nil {
		h.writeAuthError(w, err)
		return
	}

	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	title := strings.TrimSpace(req.Title)
	company := strings.TrimSpace(req.Company)
	if title == "" || company == "" {
		writeMessage(w, http.StatusBadRequest, "请填写岗位名称与单位")
		return
	}

	link := strings.TrimSpace(req.Link)
	if link == "" {
		link = model.DefaultLink
	}
	city := strings.TrimSpace(req.City)
	province := city
	if province == "" {
		province = model.DefaultProvince
	}

	var tags []string
	for _, tag := range strings.Split(req.Tags, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}

	job := &model.Job{
		ID:          auth.NewID(),
		Title:       title,
		Company:     company,
		City:        city,
		Salary:      strings.TrimSpace(req.Salary),
		Tags:        tags,
		PublishedAt: time.Now().UTC(),
		Link:        link,
		Status:      model.JobStatusOpen,
		Category:    model.DefaultCategory,
		Region:      "华东",
		Province:    province,
		Views:       0,
		ApplyLink:   link,
		SourceLink:  link,
	}
	if err := h.store.CreateJob(ctx, job); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// DeleteJob 下架岗位
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, err := h.sessions.RequireAdmin(ctx, r); err != nil {
		h.writeAuthError(w, err)
		return
	}
	jobID := r.PathValue("id")
	if jobID == "" {
		writeMessage(w, http.StatusBadRequest, "缺少岗位标识")
		return
	}
	if err := h.store.DeleteJob(ctx, jobID); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeOK(w)
}

package server

import (
	"net/http"
	"strings"
	"time"

	"shangan/internal/model"
)

// jobView 岗位的对外表示：岗位字段 + 调用者的投递状态
// 客户端一次请求即可渲染列表与个人状态
type jobView struct {
	*model.Job
	Applied bool   `json:"applied"`
	Note    string `json:"note"`
}

// ListJobs 岗位列表，合并调用者的操作记录
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.sessions.RequireAccess(ctx, r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	jobs, err := h.store.ListJobs(ctx)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	actions, err := h.store.ListJobActions(ctx, user.ID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	byJob := make(map[string]*model.JobAction, len(actions))
	for _, action := range actions {
		byJob[action.JobID] = action
	}

	views := make([]jobView, 0, len(jobs))
	for _, job := range jobs {
		v := jobView{Job: job}
		if action, ok := byJob[job.ID]; ok {
			v.Applied = action.Applied
			v.Note = action.Note
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": views})
}

// findJobAction 查找调用者对指定岗位的既有记录，不存在返回 nil
func (h *Handler) findJobAction(r *http.Request, userID, jobID string) (*model.JobAction, error) {
	actions, err := h.store.ListJobActions(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	for _, action := range actions {
		if action.JobID == jobID {
			return action, nil
		}
	}
	return nil, nil
}

// ToggleApplied 切换投递状态，保留既有备注
func (h *Handler) ToggleApplied(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.sessions.RequireAccess(ctx, r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	jobID := r.PathValue("id")
	if jobID == "" {
		writeMessage(w, http.StatusBadRequest, "缺少岗位标识")
		return
	}
	var req struct {
		Applied bool `json:"applied"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	existing, err := h.findJobAction(r, user.ID, jobID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	note := ""
	if existing != nil {
		note = existing.Note
	}

	action, err := h.store.UpsertJobAction(ctx, &model.JobAction{
		UserID:    user.ID,
		JobID:     jobID,
		Applied:   req.Applied,
		Note:      note,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// UpdateNote 更新备注，保留既有投递状态
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.sessions.RequireAccess(ctx, r)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	jobID := r.PathValue("id")
	if jobID == "" {
		writeMessage(w, http.StatusBadRequest, "缺少岗位标识")
		return
	}
	var req struct {
		Note string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	existing, err := h.findJobAction(r, user.ID, jobID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	applied := false
	if existing != nil {
		applied = existing.Applied
	}

	action, err := h.store.UpsertJobAction(ctx, &model.JobAction{
		UserID:    user.ID,
		JobID:     jobID,
		Applied:   applied,
		Note:      strings.TrimSpace(req.Note),
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/clubhub/auth"
	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

type ApprovalHandler struct {
	store *store.Store
}

func NewApprovalHandler(st *store.Store) *ApprovalHandler {
	return &ApprovalHandler{store: st}
}

// SubmitApproval handles POST /club/approval
func (h *ApprovalHandler) SubmitApproval(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.SubmitApprovalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	if req.ClubName == nil || req.ClubIntroduction == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: club_name 或 club_introduction")
		return
	}
	name := strings.TrimSpace(*req.ClubName)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "club_name 不能为空")
		return
	}

	approvalID, err := h.store.CreateApproval(r.Context(), userID, name, *req.ClubIntroduction)
	if err != nil {
		slog.Error("failed to create approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法提交审批")
		return
	}

	slog.Info("club approval submitted", "approval_id", approvalID, "applicant_id", userID, "club_name", name)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitApprovalResponse{
		Message:    "审批申请已提交，等待管理员审批",
		ApprovalID: approvalID,
	})
}

// DecideApproval handles POST /club/approval/{approval_id}
// Mounted behind RequireSession: an unknown caller is a 403, not a 401.
func (h *ApprovalHandler) DecideApproval(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	user := auth.UserFrom(r.Context())
	if !user.IsAdmin() {
		middleware.ErrorResponse(w, http.StatusForbidden, "无权限操作，只有管理员可以审批")
		return
	}

	approvalID, ok := pathID(r, "approval_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "approval_id 无效")
		return
	}

	var req models.DecideApprovalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	if req.ApprovalStatus == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: approval_status")
		return
	}
	status := *req.ApprovalStatus
	if status != models.ApprovalApproved && status != models.ApprovalRejected {
		middleware.ErrorResponse(w, http.StatusBadRequest, "approval_status 只能是 approved 或 rejected")
		return
	}

	clubID, err := h.store.DecideApproval(r.Context(), approvalID, status, req.ApprovalOpinion)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "未找到对应的审批记录")
		return
	}
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "该申请已审批")
		return
	}
	if err != nil {
		slog.Error("failed to decide approval", "approval_id", approvalID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法完成审批")
		return
	}

	slog.Info("club approval decided",
		"approval_id", approvalID,
		"status", status,
		"admin_id", user.ID,
		"club_id", clubID,
	)

	resp := models.DecideApprovalResponse{Message: "审批成功"}
	if clubID != 0 {
		resp.ClubID = &clubID
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetApprovalList handles GET /club/approval/list
// Admins see every request; everyone else sees their own.
func (h *ApprovalHandler) GetApprovalList(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}

	user := auth.UserFrom(r.Context())
	if user == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "用户不存在")
		return
	}

	var applicant int64
	if !user.IsAdmin() {
		applicant = user.ID
	}

	approvals, err := h.store.ListApprovals(r.Context(), applicant)
	if err != nil {
		slog.Error("failed to list approvals", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取审批记录")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ApprovalListResponse{Approvals: approvals})
}

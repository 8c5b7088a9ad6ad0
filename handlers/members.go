// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

type MemberHandler struct {
	store *store.Store
}

func NewMemberHandler(st *store.Store) *MemberHandler {
	return &MemberHandler{store: st}
}

// Apply handles POST /club/member/apply
func (h *MemberHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.ApplyMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	if req.ClubID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: club_id")
		return
	}
	if req.UserID != nil && *req.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "无权限操作，只能为自己提交申请")
		return
	}

	clubID := *req.ClubID
	if _, err := h.store.GetClub(r.Context(), clubID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "社团不存在")
			return
		}
		slog.Error("failed to get club", "club_id", clubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法提交申请")
		return
	}

	memberID, err := h.store.ApplyMembership(r.Context(), userID, clubID)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "重复申请，您已提交过申请，正在等待审核")
		return
	}
	if err != nil {
		slog.Error("failed to apply for membership", "club_id", clubID, "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法提交申请")
		return
	}

	slog.Info("membership requested", "member_id", memberID, "club_id", clubID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "申请已提交，等待审核"})
}

// Approve handles POST /club/member/approve
// Only the club's founder may decide applications.
func (h *MemberHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.ApproveMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	if req.UserID == nil || req.ClubID == nil || req.Status == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必备字段: user_id、club_id 或 status")
		return
	}
	status := *req.Status
	if status != models.MemberApproved && status != models.MemberRejected {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status 只能是 approved 或 rejected")
		return
	}

	isFounder, err := h.store.IsClubFounder(r.Context(), actorID, *req.ClubID)
	if err != nil {
		slog.Error("failed to check founder role", "club_id", *req.ClubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法更新申请状态")
		return
	}
	if !isFounder {
		middleware.ErrorResponse(w, http.StatusForbidden, "无权限操作，只有社长可以审核申请")
		return
	}

	err = h.store.DecideMembership(r.Context(), *req.UserID, *req.ClubID, status)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "未找到待审核的申请记录")
		return
	}
	if err != nil {
		slog.Error("failed to decide membership", "club_id", *req.ClubID, "user_id", *req.UserID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法更新申请状态")
		return
	}

	slog.Info("membership decided",
		"club_id", *req.ClubID,
		"user_id", *req.UserID,
		"status", status,
		"founder_id", actorID,
	)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "申请状态已更新"})
}

// Remove handles POST /club/member/remove
// TODO: require the founder of the member's club; any signed-in user can remove today.
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actorID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.RemoveMemberRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}
	if req.MemberID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必备字段: member_id")
		return
	}

	err := h.store.RemoveMember(r.Context(), *req.MemberID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "成员不存在")
		return
	}
	if err != nil {
		slog.Error("failed to remove member", "member_id", *req.MemberID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法移除成员")
		return
	}

	slog.Info("member removed", "member_id", *req.MemberID, "by", actorID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "成员已移除"})
}

// List handles GET /club/{club_id}/members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "club_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "club_id 无效")
		return
	}

	members, err := h.store.ListMembers(r.Context(), clubID)
	if err != nil {
		slog.Error("failed to list members", "club_id", clubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取成员列表")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MemberListResponse{Members: members})
}

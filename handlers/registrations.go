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

type RegistrationHandler struct {
	store *store.Store
}

func NewRegistrationHandler(st *store.Store) *RegistrationHandler {
	return &RegistrationHandler{store: st}
}

// parseActivityRequest reads {"activity_id": N}, answering 400 on failure.
func parseActivityRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req models.ActivityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return 0, false
	}
	if req.ActivityID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: activity_id")
		return 0, false
	}
	return *req.ActivityID, true
}

// Register handles POST /activity/register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activityID, ok := parseActivityRequest(w, r)
	if !ok {
		return
	}

	if _, err := h.store.GetActivity(r.Context(), activityID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "活动不存在")
			return
		}
		slog.Error("failed to get activity", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法报名")
		return
	}

	registrationID, err := h.store.Register(r.Context(), userID, activityID)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "您已报名该活动")
		return
	}
	if err != nil {
		slog.Error("failed to register for activity", "activity_id", activityID, "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法报名")
		return
	}

	slog.Info("activity registration created",
		"registration_id", registrationID,
		"activity_id", activityID,
		"user_id", userID,
	)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "报名成功"})
}

// Cancel handles POST /activity/register/cancel
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activityID, ok := parseActivityRequest(w, r)
	if !ok {
		return
	}

	err := h.store.CancelRegistration(r.Context(), userID, activityID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "未找到报名记录，无法取消报名")
		return
	}
	if err != nil {
		slog.Error("failed to cancel registration", "activity_id", activityID, "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法取消报名")
		return
	}

	slog.Info("activity registration cancelled", "activity_id", activityID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "取消报名成功"})
}

// List handles GET /activity/register/list
// Founders see registrations for all activities of their clubs, everyone
// else sees their own.
func (h *RegistrationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	founder, err := h.store.FoundsAnyClub(r.Context(), userID)
	if err != nil {
		slog.Error("failed to check founded clubs", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取报名列表")
		return
	}

	var regs []models.ActivityRegistration
	if founder {
		regs, err = h.store.ListFounderRegistrations(r.Context(), userID)
	} else {
		regs, err = h.store.ListUserRegistrations(r.Context(), userID)
	}
	if err != nil {
		slog.Error("failed to list registrations", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取报名列表")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegistrationListResponse{
		Message:       "报名记录获取成功",
		Registrations: regs,
	})
}

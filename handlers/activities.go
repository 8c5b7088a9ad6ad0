// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

type ActivityHandler struct {
	store *store.Store
}

func NewActivityHandler(st *store.Store) *ActivityHandler {
	return &ActivityHandler{store: st}
}

// CreateActivity handles POST /club/activity
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.CreateActivityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	if req.ClubID == nil || strings.TrimSpace(req.ActivityTitle) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "缺少必需字段: club_id 或 activity_title")
		return
	}
	when, err := parseActivityTime(req.ActivityTime)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_time 格式错误，应为 YYYY-MM-DD HH:MM:SS")
		return
	}

	club, err := h.store.GetClub(r.Context(), *req.ClubID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "社团不存在")
		return
	}
	if err != nil {
		slog.Error("failed to get club", "club_id", *req.ClubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法创建活动")
		return
	}
	if club.FounderID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "无权限操作，只有社团创始人可以创建活动")
		return
	}

	activityID, err := h.store.CreateActivity(r.Context(), models.ClubActivity{
		ClubID:             club.ID,
		Title:              strings.TrimSpace(req.ActivityTitle),
		Time:               when,
		Location:           req.ActivityLocation,
		RegistrationMethod: req.RegistrationMethod,
		Description:        req.ActivityDescription,
	})
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "活动标题已存在，创建失败")
		return
	}
	if err != nil {
		slog.Error("failed to create activity", "club_id", club.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法创建活动")
		return
	}

	slog.Info("activity created", "activity_id", activityID, "club_id", club.ID)

	middleware.JSONResponse(w, http.StatusOK, models.CreateActivityResponse{
		Message:    "活动创建成功",
		ActivityID: activityID,
	})
}

// GetActivityList handles GET /club/{club_id}/activities
func (h *ActivityHandler) GetActivityList(w http.ResponseWriter, r *http.Request) {
	clubID, ok := pathID(r, "club_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "club_id 无效")
		return
	}

	activities, err := h.store.ListActivities(r.Context(), clubID)
	if err != nil {
		slog.Error("failed to list activities", "club_id", clubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取活动列表")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActivityListResponse{
		Message:    "活动列表获取成功",
		Activities: activities,
	})
}

// GetActivityDetail handles GET /activity/{activity_id}
func (h *ActivityHandler) GetActivityDetail(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(r, "activity_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id 无效")
		return
	}

	activity, err := h.store.GetActivity(r.Context(), activityID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "活动不存在")
		return
	}
	if err != nil {
		slog.Error("failed to get activity", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取活动详情")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, activity)
}

// UpdateActivity handles PUT /activity/{activity_id}
// Only fields present in the body are changed.
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activityID, ok := pathID(r, "activity_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id 无效")
		return
	}

	if !h.authorizeFounder(w, r, activityID, userID, "无权限操作，只有社团创始人可以更新活动") {
		return
	}

	var req models.UpdateActivityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "请求体格式错误，请使用 JSON")
		return
	}

	update := models.ActivityUpdate{
		Location:           req.ActivityLocation,
		RegistrationMethod: req.RegistrationMethod,
		Description:        req.ActivityDescription,
	}
	if req.ActivityTitle != nil {
		title := strings.TrimSpace(*req.ActivityTitle)
		if title == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "activity_title 不能为空")
			return
		}
		update.Title = &title
	}
	if req.ActivityTime != nil {
		when, err := parseActivityTime(*req.ActivityTime)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "activity_time 格式错误，应为 YYYY-MM-DD HH:MM:SS")
			return
		}
		update.Time = &when
	}

	err := h.store.UpdateActivity(r.Context(), activityID, update)
	if errors.Is(err, store.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "活动标题已存在，更新失败")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "活动不存在")
		return
	}
	if err != nil {
		slog.Error("failed to update activity", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法更新活动")
		return
	}

	slog.Info("activity updated", "activity_id", activityID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "活动更新成功"})
}

// DeleteActivity handles DELETE /activity/{activity_id}
// Registrations and check-ins go with it.
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activityID, ok := pathID(r, "activity_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id 无效")
		return
	}

	if !h.authorizeFounder(w, r, activityID, userID, "无权限操作，只有社团创始人可以删除活动") {
		return
	}

	err := h.store.DeleteActivity(r.Context(), activityID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "活动不存在")
		return
	}
	if err != nil {
		slog.Error("failed to delete activity", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法删除活动")
		return
	}

	slog.Info("activity deleted", "activity_id", activityID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "活动删除成功"})
}

// authorizeFounder answers 404 or 403 and returns false unless userID
// founded the club owning activityID.
func (h *ActivityHandler) authorizeFounder(w http.ResponseWriter, r *http.Request, activityID, userID int64, forbidden string) bool {
	activity, err := h.store.GetActivity(r.Context(), activityID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "活动不存在")
		return false
	}
	if err != nil {
		slog.Error("failed to get activity", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取活动详情")
		return false
	}

	club, err := h.store.GetClub(r.Context(), activity.ClubID)
	if err != nil {
		slog.Error("failed to get club", "club_id", activity.ClubID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取活动详情")
		return false
	}
	if club.FounderID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, forbidden)
		return false
	}
	return true
}

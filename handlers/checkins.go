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

type CheckinHandler struct {
	store *store.Store
}

func NewCheckinHandler(st *store.Store) *CheckinHandler {
	return &CheckinHandler{store: st}
}

// Checkin handles POST /activity/checkin
// Requires a registration; a second check-in is rejected.
func (h *CheckinHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	activityID, ok := parseActivityRequest(w, r)
	if !ok {
		return
	}

	checkinID, err := h.store.Checkin(r.Context(), userID, activityID)
	switch {
	case errors.Is(err, store.ErrNotRegistered):
		middleware.ErrorResponse(w, http.StatusForbidden, "您尚未报名该活动，无法签到")
		return
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusBadRequest, "您已签到过该活动")
		return
	case err != nil:
		slog.Error("failed to check in", "activity_id", activityID, "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法签到")
		return
	}

	slog.Info("activity check-in", "checkin_id", checkinID, "activity_id", activityID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "签到成功"})
}

// List handles GET /activity/{activity_id}/checkins
func (h *CheckinHandler) List(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(r, "activity_id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id 无效")
		return
	}

	checkins, err := h.store.ListCheckins(r.Context(), activityID)
	if err != nil {
		slog.Error("failed to list check-ins", "activity_id", activityID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误，无法获取签到记录")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckinListResponse{Checkins: checkins})
}

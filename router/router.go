// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/clubhub/auth"
	"github.com/danielhkuo/clubhub/cliparse"
	"github.com/danielhkuo/clubhub/handlers"
	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/store"
)

// NewRouter builds the API handler. A nil limiter disables rate limiting.
func NewRouter(db *sqlx.DB, cfg cliparse.Config, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	st := store.New(db)
	sessions := auth.NewResolver(cfg, st)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "clubhub"),
	)
	metrics := middleware.NewMetrics(reg)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(st, sessions)
	approvalHandler := handlers.NewApprovalHandler(st)
	memberHandler := handlers.NewMemberHandler(st)
	activityHandler := handlers.NewActivityHandler(st)
	registrationHandler := handlers.NewRegistrationHandler(st)
	checkinHandler := handlers.NewCheckinHandler(st)

	public := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(metrics.Instrument(pattern, h)))
	}
	user := func(pattern string, h http.HandlerFunc) {
		public(pattern, sessions.RequireUser(h))
	}
	session := func(pattern string, h http.HandlerFunc) {
		public(pattern, sessions.RequireSession(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Accounts
	public("POST /user/register", userHandler.Register)
	public("POST /user/login", userHandler.Login)
	public("POST /user/logout", userHandler.Logout)
	user("GET /user/me", userHandler.Me)

	// Club approval
	user("POST /club/approval", approvalHandler.SubmitApproval)
	session("POST /club/approval/{approval_id}", approvalHandler.DecideApproval)
	session("GET /club/approval/list", approvalHandler.GetApprovalList)

	// Membership
	user("POST /club/member/apply", memberHandler.Apply)
	user("POST /club/member/approve", memberHandler.Approve)
	user("POST /club/member/remove", memberHandler.Remove)
	public("GET /club/{club_id}/members", memberHandler.List)

	// Activities
	user("POST /club/activity", activityHandler.CreateActivity)
	public("GET /club/{club_id}/activities", activityHandler.GetActivityList)
	public("GET /activity/{activity_id}", activityHandler.GetActivityDetail)
	user("PUT /activity/{activity_id}", activityHandler.UpdateActivity)
	user("POST /activity/{activity_id}/update", activityHandler.UpdateActivity)
	user("DELETE /activity/{activity_id}", activityHandler.DeleteActivity)
	user("POST /activity/{activity_id}/delete", activityHandler.DeleteActivity)

	// Registration and check-in
	user("POST /activity/register", registrationHandler.Register)
	user("POST /activity/register/cancel", registrationHandler.Cancel)
	user("GET /activity/register/list", registrationHandler.List)
	user("POST /activity/checkin", checkinHandler.Checkin)
	public("GET /activity/{activity_id}/checkins", checkinHandler.List)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clubhub API v1"))
	})

	var h http.Handler = mux
	if limiter != nil {
		h = limiter.Wrap(h)
	}
	return middleware.CORS(cfg.AllowedOrigins, h)
}

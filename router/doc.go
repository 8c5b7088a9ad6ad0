// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the clubhub API.

# Route Registration

NewRouter creates the full handler stack over a database connection:

	h := router.NewRouter(db, cfg, middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustedProxies))

Each route is wrapped, outermost first, in request logging, Prometheus
instrumentation labelled by the route pattern, and the session check the
route needs. The whole mux sits behind the rate limiter and CORS.

# Endpoints

Service:

	GET /health  - Liveness
	GET /metrics - Prometheus exposition
	GET /        - Banner

Accounts:

	POST /user/register
	POST /user/login
	POST /user/logout
	GET  /user/me        (session)

Club approval (session):

	POST /club/approval               - Request a new club
	POST /club/approval/{approval_id} - Admin decision
	GET  /club/approval/list          - Own requests, or all for admins

Membership:

	POST /club/member/apply    (session)
	POST /club/member/approve  (session, founder)
	POST /club/member/remove   (session)
	GET  /club/{club_id}/members

Activities:

	POST   /club/activity                (session, founder)
	GET    /club/{club_id}/activities
	GET    /activity/{activity_id}
	PUT    /activity/{activity_id}       (session, founder)
	DELETE /activity/{activity_id}       (session, founder)

POST /activity/{activity_id}/update and /delete are aliases for clients that
cannot send PUT or DELETE.

Registration and check-in (session):

	POST /activity/register
	POST /activity/register/cancel
	GET  /activity/register/list
	POST /activity/checkin
	GET  /activity/{activity_id}/checkins (public)
*/
package router

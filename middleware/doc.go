// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets an X-Request-ID (kept from the client or generated with
google/uuid). It is echoed in the response, available through RequestIDFrom,
and logged with method, path, status and duration_ms on completion.

# Metrics

	m := middleware.NewMetrics(registry)
	mux.HandleFunc(pattern, m.Instrument(pattern, handler))

Exports clubhub_http_requests_total{route,status},
clubhub_http_request_duration_seconds{route} and
clubhub_http_inflight_requests.

# Rate Limiting

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, cfg.TrustedProxies)
	handler := rl.Wrap(mux)
	go rl.Run(ctx, time.Minute) // forget idle clients

One token bucket per client IP, as resolved by GetClientIP with the
configured trusted proxies. Over-budget requests get 429 with
Retry-After: 1.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(cfg.AllowedOrigins, mux),
	}

Listed origins are echoed back with credentials allowed so the session cookie
is sent. Any other origin gets no CORS headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "activity_id is required")

Error bodies are always {"error": "..."}.

	var req models.ActivityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r, cfg.TrustedProxies)

Returns the TCP peer. Only when the peer is a trusted proxy are
X-Forwarded-For (nearest untrusted hop) and then X-Real-IP consulted. Used as
the rate limit key.
*/
package middleware

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/clubhub/auth"
	"github.com/danielhkuo/clubhub/middleware"
)

// Accepted activity_time layouts, most common first.
var activityTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
}

var errBadTime = errors.New("invalid activity_time")

func parseActivityTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range activityTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errBadTime
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// callerID returns the session user. The auth middleware guarantees it on
// protected routes; the check covers handlers mounted without it.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "未登录")
		return 0, false
	}
	return id, true
}

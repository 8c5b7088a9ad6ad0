// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/danielhkuo/clubhub/cliparse"
	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

// CookieName is the session cookie carrying the caller's user ID.
const CookieName = "user_id"

const sessionMaxAge = 7 * 24 * time.Hour

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// UserLoader looks up the account behind a session.
type UserLoader interface {
	GetUser(ctx context.Context, userID int64) (*models.User, error)
}

// Resolver turns the session cookie into a principal on the request context.
type Resolver struct {
	codec *securecookie.SecureCookie // nil: plain integer cookies
	users UserLoader
}

func NewResolver(cfg cliparse.Config, users UserLoader) *Resolver {
	r := &Resolver{users: users}
	if cfg.SessionHashKey != "" {
		var block []byte
		if cfg.SessionBlockKey != "" {
			block = []byte(cfg.SessionBlockKey)
		}
		r.codec = securecookie.New([]byte(cfg.SessionHashKey), block)
		r.codec.MaxAge(int(sessionMaxAge.Seconds()))
	}
	return r
}

// SessionCookie builds the cookie that identifies userID on later requests.
func (r *Resolver) SessionCookie(userID int64) (*http.Cookie, error) {
	value := strconv.FormatInt(userID, 10)
	if r.codec != nil {
		encoded, err := r.codec.Encode(CookieName, userID)
		if err != nil {
			return nil, err
		}
		value = encoded
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearCookie expires the session cookie.
func (r *Resolver) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// UserID extracts the user ID claimed by the request's session cookie.
func (r *Resolver) UserID(req *http.Request) (int64, error) {
	c, err := req.Cookie(CookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return 0, ErrNoSession
	}

	var id int64
	if r.codec != nil {
		if err := r.codec.Decode(CookieName, c.Value, &id); err != nil {
			return 0, ErrInvalidSession
		}
	} else {
		id, err = strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64)
		if err != nil {
			return 0, ErrInvalidSession
		}
	}

	if id <= 0 {
		return 0, ErrInvalidSession
	}
	return id, nil
}

// RequireUser rejects requests without a session for an existing user.
func (r *Resolver) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return r.resolve(next, true)
}

// RequireSession rejects requests without a well-formed session but lets the
// handler decide what an unknown user means. UserFrom returns nil in that case.
func (r *Resolver) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return r.resolve(next, false)
}

func (r *Resolver) resolve(next http.HandlerFunc, strict bool) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id, err := r.UserID(req)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "未登录")
			return
		}

		user, err := r.users.GetUser(req.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			if strict {
				middleware.ErrorResponse(w, http.StatusUnauthorized, "未登录")
				return
			}
			user = nil
		} else if err != nil {
			slog.Error("failed to load session user", "user_id", id, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "数据库错误")
			return
		}

		ctx := WithPrincipal(req.Context(), Principal{UserID: id, User: user})
		next(w, req.WithContext(ctx))
	}
}

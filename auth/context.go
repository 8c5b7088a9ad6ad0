// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"

	"github.com/danielhkuo/clubhub/models"
)

// Principal is the caller attached to a request. User is nil when the
// session names an account that no longer exists.
type Principal struct {
	UserID int64
	User   *models.User
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// UserFrom returns the resolved user, or nil.
func UserFrom(ctx context.Context) *models.User {
	p, _ := PrincipalFrom(ctx)
	return p.User
}

// UserIDFrom returns the session's user ID, or false when there is no session.
func UserIDFrom(ctx context.Context) (int64, bool) {
	p, ok := PrincipalFrom(ctx)
	return p.UserID, ok && p.UserID != 0
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves the caller of a request from the user_id session cookie.

# Session Cookie

The cookie is named user_id. With SESSION_HASH_KEY configured it is signed
(and, with SESSION_BLOCK_KEY, encrypted) by gorilla/securecookie:

	cookie, err := resolver.SessionCookie(user.ID)
	http.SetCookie(w, cookie)

Without a hash key the cookie is the bare decimal ID (user_id=3). This keeps
local tooling simple and must not be used in production.

# Middleware

Two wrappers attach a Principal to the request context:

	RequireUser     401 unless the cookie names an existing user
	RequireSession  401 unless the cookie is well formed; the user may be nil

Handlers read the caller with:

	user := auth.UserFrom(r.Context())        // *models.User or nil
	id, ok := auth.UserIDFrom(r.Context())

Every request is revalidated against the store, so a deleted or demoted
account takes effect immediately.

# Errors

  - ErrNoSession: cookie absent or empty
  - ErrInvalidSession: cookie present but not decodable to a positive ID

A storage failure while loading the user yields 500.
*/
package auth

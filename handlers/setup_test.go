// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/clubhub/auth"
	"github.com/danielhkuo/clubhub/store"
	"github.com/danielhkuo/clubhub/testutil"
)

// testEnv bundles the pieces every handler test needs.
type testEnv struct {
	db       *sqlx.DB
	store    *store.Store
	sessions *auth.Resolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	return &testEnv{
		db:       conn,
		store:    st,
		sessions: auth.NewResolver(testutil.GetTestConfig(), st),
	}
}

// serve runs h behind the strict session check, as the router mounts it.
func (e *testEnv) serve(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.sessions.RequireUser(h)(w, req)
	return w
}

// serveSession runs h behind the lenient session check.
func (e *testEnv) serveSession(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.sessions.RequireSession(h)(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

// servePublic runs a public handler with no session check.
func servePublic(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/clubhub/cliparse"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/store"
)

type fakeUsers map[int64]*models.User

func (f fakeUsers) GetUser(_ context.Context, id int64) (*models.User, error) {
	if id == 666 {
		return nil, errors.New("disk on fire")
	}
	u, ok := f[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

var testUsers = fakeUsers{
	1: {ID: 1, Username: "alice", UserType: models.UserTypeMember},
	2: {ID: 2, Username: "root", UserType: models.UserTypeAdmin},
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest("GET", "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	}
	return req
}

func TestUserID_PlainCookie(t *testing.T) {
	r := NewResolver(cliparse.Config{}, testUsers)

	tests := []struct {
		name    string
		cookie  string
		want    int64
		wantErr error
	}{
		{"valid", "3", 3, nil},
		{"missing", "", 0, ErrNoSession},
		{"not a number", "abc", 0, ErrInvalidSession},
		{"zero", "0", 0, ErrInvalidSession},
		{"negative", "-4", 0, ErrInvalidSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.UserID(requestWithCookie(tt.cookie))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UserID() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("UserID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserID_SignedCookie(t *testing.T) {
	cfg := cliparse.Config{SessionHashKey: "0123456789abcdef0123456789abcdef"}
	r := NewResolver(cfg, testUsers)

	cookie, err := r.SessionCookie(42)
	if err != nil {
		t.Fatalf("SessionCookie() error = %v", err)
	}
	if !cookie.HttpOnly || cookie.Path != "/" {
		t.Error("session cookie should be HttpOnly with Path /")
	}
	if cookie.Value == "42" {
		t.Error("signed cookie should not be the plain ID")
	}

	got, err := r.UserID(requestWithCookie(cookie.Value))
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if got != 42 {
		t.Errorf("UserID() = %d, want 42", got)
	}

	// Forged plain value is rejected once signing is on.
	if _, err := r.UserID(requestWithCookie("42")); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for unsigned cookie, got %v", err)
	}

	// A different key cannot decode it.
	other := NewResolver(cliparse.Config{SessionHashKey: "another-key-another-key-another-k"}, testUsers)
	if _, err := other.UserID(requestWithCookie(cookie.Value)); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for foreign key, got %v", err)
	}
}

func TestUserID_EncryptedCookie(t *testing.T) {
	cfg := cliparse.Config{
		SessionHashKey:  "0123456789abcdef0123456789abcdef",
		SessionBlockKey: "fedcba9876543210",
	}
	r := NewResolver(cfg, testUsers)

	cookie, err := r.SessionCookie(9)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.UserID(requestWithCookie(cookie.Value))
	if err != nil || got != 9 {
		t.Errorf("UserID() = %d, %v; want 9, nil", got, err)
	}
}

func TestClearCookie(t *testing.T) {
	c := NewResolver(cliparse.Config{}, testUsers).ClearCookie()
	if c.Name != CookieName || c.MaxAge >= 0 {
		t.Errorf("ClearCookie() = %+v, want expired %s cookie", c, CookieName)
	}
}

func TestRequireUser(t *testing.T) {
	r := NewResolver(cliparse.Config{}, testUsers)

	tests := []struct {
		name       string
		cookie     string
		wantStatus int
		wantUser   string
	}{
		{"known user", "1", http.StatusOK, "alice"},
		{"admin", "2", http.StatusOK, "root"},
		{"no cookie", "", http.StatusUnauthorized, ""},
		{"garbage", "x", http.StatusUnauthorized, ""},
		{"unknown user", "99", http.StatusUnauthorized, ""},
		{"storage failure", "666", http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.User
			h := r.RequireUser(func(w http.ResponseWriter, req *http.Request) {
				seen = UserFrom(req.Context())
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			h(w, requestWithCookie(tt.cookie))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantUser != "" && (seen == nil || seen.Username != tt.wantUser) {
				t.Errorf("principal = %+v, want %s", seen, tt.wantUser)
			}
		})
	}
}

func TestRequireSession_UnknownUserPassesThrough(t *testing.T) {
	r := NewResolver(cliparse.Config{}, testUsers)

	called := false
	h := r.RequireSession(func(w http.ResponseWriter, req *http.Request) {
		called = true
		id, ok := UserIDFrom(req.Context())
		if !ok || id != 99 {
			t.Errorf("UserIDFrom() = %d, %v; want 99, true", id, ok)
		}
		if UserFrom(req.Context()) != nil {
			t.Error("expected nil user for unknown account")
		}
		w.WriteHeader(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	h(w, requestWithCookie("99"))

	if !called || w.Code != http.StatusNoContent {
		t.Errorf("handler called = %v, status = %d", called, w.Code)
	}

	w = httptest.NewRecorder()
	h(w, requestWithCookie(""))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing session status = %d, want 401", w.Code)
	}
}

func TestContextHelpers_Empty(t *testing.T) {
	ctx := context.Background()
	if UserFrom(ctx) != nil {
		t.Error("UserFrom(empty) should be nil")
	}
	if _, ok := UserIDFrom(ctx); ok {
		t.Error("UserIDFrom(empty) should report false")
	}
}

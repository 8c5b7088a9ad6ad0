// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/clubhub/cliparse"
	"github.com/danielhkuo/clubhub/db"
)

// SessionCookie is the cookie carrying the caller's user ID.
const SessionCookie = "user_id"

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// Each test gets its own database, named after the test.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	conn, err := db.Open(context.Background(), cliparse.Config{
		DatabaseType: "sqlite",
		DatabaseURL:  "file:" + name + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration. No session key is
// set, so plain user ID cookies are accepted.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   "sqlite",
		DatabaseURL:    "file::memory:",
		LogLevel:       "error",
		LogFormat:      "text",
		RateLimit:      1000,
		RateBurst:      1000,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

// CreateTestUser inserts a user of the given type and returns its ID.
func CreateTestUser(t *testing.T, conn *sqlx.DB, username, userType string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO users (username, password_hash, user_type, created_at)
		VALUES (?, '', ?, ?)
		RETURNING user_id
	`), username, userType, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// CreateTestClub inserts a club founded by founderID together with the
// founder's membership row, and returns the club ID.
func CreateTestClub(t *testing.T, conn *sqlx.DB, founderID int64, name string) int64 {
	t.Helper()

	now := time.Now().UTC()
	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO club (club_name, club_introduction, founder_id, created_at)
		VALUES (?, 'A test club', ?, ?)
		RETURNING club_id
	`), name, founderID, now).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test club: %v", err)
	}

	_, err = conn.Exec(conn.Rebind(`
		INSERT INTO club_member (user_id, club_id, join_date, member_status, member_role)
		VALUES (?, ?, ?, 'approved', 'founder')
	`), founderID, id, now)
	if err != nil {
		t.Fatalf("Failed to create founder membership: %v", err)
	}
	return id
}

// CreateTestMember inserts a membership row with the given status and returns its ID.
func CreateTestMember(t *testing.T, conn *sqlx.DB, userID, clubID int64, status string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO club_member (user_id, club_id, join_date, member_status, member_role)
		VALUES (?, ?, ?, ?, 'member')
		RETURNING member_id
	`), userID, clubID, time.Now().UTC(), status).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return id
}

// CreateTestApproval inserts a pending club approval and returns its ID.
func CreateTestApproval(t *testing.T, conn *sqlx.DB, applicantID int64, clubName string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO club_approval (club_name, club_introduction, applicant_id, approval_status, submitted_at)
		VALUES (?, 'Please approve', ?, 'pending', ?)
		RETURNING approval_id
	`), clubName, applicantID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test approval: %v", err)
	}
	return id
}

// CreateTestActivity inserts an activity one week out and returns its ID.
func CreateTestActivity(t *testing.T, conn *sqlx.DB, clubID int64, title string) int64 {
	t.Helper()

	now := time.Now().UTC()
	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO club_activity (club_id, activity_title, activity_time, activity_location,
			registration_method, activity_description, publish_time)
		VALUES (?, ?, ?, 'Room 101', 'online', 'A test activity', ?)
		RETURNING activity_id
	`), clubID, title, now.Add(7*24*time.Hour), now).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test activity: %v", err)
	}
	return id
}

// CreateTestRegistration registers userID for activityID and returns the registration ID.
func CreateTestRegistration(t *testing.T, conn *sqlx.DB, userID, activityID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO activity_registration (user_id, activity_id, registration_date, payment_status)
		VALUES (?, ?, ?, 'unpaid')
		RETURNING registration_id
	`), userID, activityID, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test registration: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table matching where.
func CountRows(t *testing.T, conn *sqlx.DB, table, where string, args ...any) int {
	t.Helper()

	var n int
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if err := conn.Get(&n, conn.Rebind(query), args...); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request. A non-zero userID is sent as a
// plain session cookie.
func MakeRequest(method, path string, body any, userID int64) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if userID != 0 {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: strconv.FormatInt(userID, 10)})
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError checks the status and that the body is an {"error": ...} object.
func AssertError(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	AssertStatus(t, w, expected)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body: %v", err)
	}
	if msg, ok := body["error"].(string); !ok || msg == "" {
		t.Errorf("Expected non-empty error field, got %v", body)
	}
}

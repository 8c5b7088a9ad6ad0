// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/clubhub/middleware"
	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "clubhub API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	// Only the exact root is served; unknown paths fall through to 404.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	// Every API route answers with a JSON body from its handler, even when
	// the answer is 401 or 404. The mux's own 404 and 405 are plain text.
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/user/register"},
		{"POST", "/user/login"},
		{"POST", "/user/logout"},
		{"GET", "/user/me"},

		{"POST", "/club/approval"},
		{"POST", "/club/approval/1"},
		{"GET", "/club/approval/list"},

		{"POST", "/club/member/apply"},
		{"POST", "/club/member/approve"},
		{"POST", "/club/member/remove"},
		{"GET", "/club/1/members"},

		{"POST", "/club/activity"},
		{"GET", "/club/1/activities"},
		{"GET", "/activity/1"},
		{"PUT", "/activity/1"},
		{"POST", "/activity/1/update"},
		{"DELETE", "/activity/1"},
		{"POST", "/activity/1/delete"},

		{"POST", "/activity/register"},
		{"POST", "/activity/register/cancel"},
		{"GET", "/activity/register/list"},
		{"POST", "/activity/checkin"},
		{"GET", "/activity/1/checkins"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Route %s %s returned %d with Content-Type %q, expected a handler response",
					tc.method, tc.path, w.Code, ct)
			}
		})
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/user/me"},
		{"POST", "/club/approval"},
		{"POST", "/club/approval/1"},
		{"GET", "/club/approval/list"},
		{"POST", "/club/member/apply"},
		{"POST", "/club/activity"},
		{"PUT", "/activity/1"},
		{"DELETE", "/activity/1"},
		{"POST", "/activity/register"},
		{"POST", "/activity/checkin"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			testutil.AssertError(t, w, http.StatusUnauthorized)
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to create activity", "PUT", "/club/activity", http.StatusMethodNotAllowed},
		{"PATCH to activity", "PATCH", "/activity/1", http.StatusMethodNotAllowed},
		{"DELETE to members", "DELETE", "/club/1/members", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	founderID := testutil.CreateTestUser(t, db, "founder", models.UserTypeFounder)
	clubID := testutil.CreateTestClub(t, db, founderID, "Chess Club")
	activityID := testutil.CreateTestActivity(t, db, clubID, "Blitz Night")

	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("GET", "/activity/"+itoa(activityID), nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var activity models.ClubActivity
	testutil.AssertJSON(t, w, &activity)
	if activity.ID != activityID {
		t.Errorf("Expected activity %d, got %d", activityID, activity.ID)
	}

	req = httptest.NewRequest("GET", "/club/"+itoa(clubID)+"/members", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var members models.MemberListResponse
	testutil.AssertJSON(t, w, &members)
	if len(members.Members) != 1 {
		t.Errorf("Expected the founder as only member, got %d", len(members.Members))
	}
}

func TestCORSPreflight(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	req := httptest.NewRequest("OPTIONS", "/activity/register", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Expected credentials allowed, got %q", got)
	}

	// Origins outside the configured list are not granted access.
	req = httptest.NewRequest("GET", "/user/me", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS grant for unlisted origin, got %q", got)
	}
}

func TestRateLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), middleware.NewRateLimiter(0.001, 2, nil))

	codes := make([]int, 3)
	for i := range codes {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		// A forged header must not buy a fresh budget.
		req.Header.Set("X-Forwarded-For", "192.0.2."+strconv.Itoa(i))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after burst, got %d", codes[2])
	}

	// Another client has its own budget.
	req := httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "198.51.100.1:4000"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/activity/register/list", nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	body := w.Body.String()
	want := `clubhub_http_requests_total{route="GET /activity/register/list",status="401"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("Expected metrics to contain %q", want)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("Expected Go runtime metrics")
	}
}

// TestSessionFlow drives the real server with a cookie jar: sign up, log in,
// found a club and publish an activity.
func TestSessionFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	adminID := testutil.CreateTestUser(t, db, "admin", models.UserTypeAdmin)

	srv := httptest.NewServer(NewRouter(db, testutil.GetTestConfig(), nil))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	post := func(path string, body any) *http.Response {
		t.Helper()
		b, _ := json.Marshal(body)
		resp, err := client.Post(srv.URL+path, "application/json", bytes.NewReader(b))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		return resp
	}
	decode := func(resp *http.Response, v any) {
		t.Helper()
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}

	creds := models.RegisterUserRequest{Username: "alice", Password: "secret123"}
	if resp := post("/user/register", creds); resp.StatusCode != http.StatusOK {
		t.Fatalf("Register returned %d", resp.StatusCode)
	}

	resp := post("/user/login", models.LoginRequest{Username: creds.Username, Password: creds.Password})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Login returned %d", resp.StatusCode)
	}
	var login models.UserResponse
	decode(resp, &login)
	aliceID := login.User.ID
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a request ID header")
	}

	meResp, err := client.Get(srv.URL + "/user/me")
	if err != nil {
		t.Fatalf("GET /user/me failed: %v", err)
	}
	var me models.UserResponse
	decode(meResp, &me)
	if me.User.ID != aliceID {
		t.Fatalf("Expected session for %d, got %d", aliceID, me.User.ID)
	}

	clubName, intro := "Robotics Club", "We build robots"
	resp = post("/club/approval", models.SubmitApprovalRequest{ClubName: &clubName, ClubIntroduction: &intro})
	var submitted models.SubmitApprovalResponse
	decode(resp, &submitted)
	if submitted.ApprovalID == 0 {
		t.Fatal("Expected approval_id")
	}

	// Alice is not an admin.
	status := models.ApprovalApproved
	resp = post("/club/approval/"+itoa(submitted.ApprovalID), models.DecideApprovalRequest{ApprovalStatus: &status})
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("Expected 403 for non-admin decision, got %d", resp.StatusCode)
	}

	// The admin decides with a plain cookie in a separate client.
	b, _ := json.Marshal(models.DecideApprovalRequest{ApprovalStatus: &status})
	req, _ := http.NewRequest("POST", srv.URL+"/club/approval/"+itoa(submitted.ApprovalID), bytes.NewReader(b))
	req.AddCookie(&http.Cookie{Name: testutil.SessionCookie, Value: itoa(adminID)})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Admin decision failed: %v", err)
	}
	var decided models.DecideApprovalResponse
	decode(resp, &decided)
	if decided.ClubID == nil {
		t.Fatal("Expected club_id from approval")
	}

	resp = post("/club/activity", models.CreateActivityRequest{
		ClubID:        decided.ClubID,
		ActivityTitle: "Line Follower Race",
		ActivityTime:  "2025-09-01 14:00:00",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Create activity returned %d", resp.StatusCode)
	}

	resp = post("/user/logout", nil)
	resp.Body.Close()
	meResp, err = client.Get(srv.URL + "/user/me")
	if err != nil {
		t.Fatalf("GET /user/me failed: %v", err)
	}
	meResp.Body.Close()
	if meResp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", meResp.StatusCode)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

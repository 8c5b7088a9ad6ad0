// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielhkuo/clubhub/models"
	"github.com/danielhkuo/clubhub/testutil"
)

func TestApplyMembership(t *testing.T) {
	env := newTestEnv(t)
	handler := NewMemberHandler(env.store)
	founderID := testutil.CreateTestUser(t, env.db, "founder", models.UserTypeFounder)
	aliceID := testutil.CreateTestUser(t, env.db, "alice", models.UserTypeMember)
	bobID := testutil.CreateTestUser(t, env.db, "bob", models.UserTypeMember)
	clubID := testutil.CreateTestClub(t, env.db, founderID, "Chess Club")

	tests := []struct {
		name           string
		userID         int64
		body           models.ApplyMemberRequest
		expectedStatus int
	}{
		{"valid request", aliceID, models.ApplyMemberRequest{ClubID: int64Ptr(clubID)}, http.StatusOK},
		{"duplicate pending", aliceID, models.ApplyMemberRequest{ClubID: int64Ptr(clubID)}, http.StatusBadRequest},
		{"matching user_id", bobID, models.ApplyMemberRequest{UserID: int64Ptr(bobID), ClubID: int64Ptr(clubID)}, http.StatusOK},
		{"foreign user_id", aliceID, models.ApplyMemberRequest{UserID: int64Ptr(bobID), ClubID: int64Ptr(clubID)}, http.StatusForbidden},
		{"already a member", founderID, models.ApplyMemberRequest{ClubID: int64Ptr(clubID)}, http.StatusBadRequest},
		{"missing club", aliceID, models.ApplyMemberRequest{}, http.StatusBadRequest},
		{"unknown club", aliceID, models.ApplyMemberRequest{ClubID: int64Ptr(9999)}, http.StatusNotFound},
		{"not signed in", 0, models.ApplyMemberRequest{ClubID: int64Ptr(clubID)}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/club/member/apply", tt.body, tt.userID)
			w := env.serve(handler.Apply, req)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertError(t, w, tt.expectedStatus)
				return
			}
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}

	if n := testutil.CountRows(t, env.db, "club_member", "user_id = ? AND member_status = 'pending'", aliceID); n != 1 {
		t.Errorf("Expected 1 pending application for alice, got %d", n)
	}
}

func TestApproveMembership(t *testing.T) {
	env := newTestEnv(t)
	handler := NewMemberHandler(env.store)
	founderID := testutil.CreateTestUser(t, env.db, "founder", models.UserTypeFounder)
	otherFounderID := testutil.CreateTestUser(t, env.db, "other", models.UserTypeFounder)
	aliceID := testutil.CreateTestUser(t, env.db, "alice", models.UserTypeMember)
	bobID := testutil.CreateTestUser(t, env.db, "bob", models.UserTypeMember)
	clubID := testutil.CreateTestClub(t, env.db, founderID, "Chess Club")
	testutil.CreateTestClub(t, env.db, otherFounderID, "Go Club")

	testutil.CreateTestMember(t, env.db, aliceID, clubID, models.MemberPending)
	testutil.CreateTestMember(t, env.db, bobID, clubID, models.MemberPending)

	approve := func(userID int64, body models.ApproveMemberRequest) int {
		req := testutil.MakeRequest("POST", "/club/member/approve", body, userID)
		return env.serve(handler.Approve, req).Code
	}

	tests := []struct {
		name           string
		userID         int64
		body           models.ApproveMemberRequest
		expectedStatus int
	}{
		{
			name:           "founder of another club",
			userID:         otherFounderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID), ClubID: int64Ptr(clubID), Status: strPtr("approved")},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "plain member",
			userID:         bobID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID), ClubID: int64Ptr(clubID), Status: strPtr("approved")},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "invalid status",
			userID:         founderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID), ClubID: int64Ptr(clubID), Status: strPtr("maybe")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing fields",
			userID:         founderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "approve alice",
			userID:         founderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID), ClubID: int64Ptr(clubID), Status: strPtr("approved")},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "alice already decided",
			userID:         founderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(aliceID), ClubID: int64Ptr(clubID), Status: strPtr("rejected")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "reject bob",
			userID:         founderID,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(bobID), ClubID: int64Ptr(clubID), Status: strPtr("rejected")},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not signed in",
			userID:         0,
			body:           models.ApproveMemberRequest{UserID: int64Ptr(bobID), ClubID: int64Ptr(clubID), Status: strPtr("approved")},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := approve(tt.userID, tt.body); code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, code)
			}
		})
	}

	if n := testutil.CountRows(t, env.db, "club_member", "user_id = ? AND member_status = 'approved'", aliceID); n != 1 {
		t.Errorf("Expected alice approved, got %d rows", n)
	}
	if n := testutil.CountRows(t, env.db, "club_member", "user_id = ? AND member_status = 'rejected'", bobID); n != 1 {
		t.Errorf("Expected bob rejected, got %d rows", n)
	}
}

func TestRemoveMember(t *testing.T) {
	env := newTestEnv(t)
	handler := NewMemberHandler(env.store)
	founderID := testutil.CreateTestUser(t, env.db, "founder", models.UserTypeFounder)
	aliceID := testutil.CreateTestUser(t, env.db, "alice", models.UserTypeMember)
	clubID := testutil.CreateTestClub(t, env.db, founderID, "Chess Club")
	memberID := testutil.CreateTestMember(t, env.db, aliceID, clubID, models.MemberApproved)

	tests := []struct {
		name           string
		userID         int64
		body           any
		expectedStatus int
	}{
		{"missing member_id", founderID, map[string]any{}, http.StatusBadRequest},
		{"not signed in", 0, models.RemoveMemberRequest{MemberID: int64Ptr(memberID)}, http.StatusUnauthorized},
		{"remove alice", founderID, models.RemoveMemberRequest{MemberID: int64Ptr(memberID)}, http.StatusOK},
		{"already removed", founderID, models.RemoveMemberRequest{MemberID: int64Ptr(memberID)}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/club/member/remove", tt.body, tt.userID)
			w := env.serve(handler.Remove, req)

			if tt.expectedStatus != http.StatusOK {
				testutil.AssertError(t, w, tt.expectedStatus)
				return
			}
			testutil.AssertStatus(t, w, http.StatusOK)
		})
	}

	if n := testutil.CountRows(t, env.db, "club_member", "member_id = ?", memberID); n != 0 {
		t.Errorf("Expected member row deleted, got %d", n)
	}
}

func TestListMembers(t *testing.T) {
	env := newTestEnv(t)
	handler := NewMemberHandler(env.store)
	founderID := testutil.CreateTestUser(t, env.db, "founder", models.UserTypeFounder)
	aliceID := testutil.CreateTestUser(t, env.db, "alice", models.UserTypeMember)
	clubID := testutil.CreateTestClub(t, env.db, founderID, "Chess Club")
	testutil.CreateTestMember(t, env.db, aliceID, clubID, models.MemberPending)

	t.Run("lists founder and applicant", func(t *testing.T) {
		req := testutil.MakeRequest("GET", fmt.Sprintf("/club/%d/members", clubID), nil, 0)
		req.SetPathValue("club_id", fmt.Sprint(clubID))
		w := servePublic(handler.List, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MemberListResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(resp.Members))
		}
		if resp.Members[0].Role != models.RoleFounder || resp.Members[0].Username != "founder" {
			t.Errorf("Expected founder first, got %+v", resp.Members[0])
		}
		if resp.Members[1].Status != models.MemberPending || resp.Members[1].Username != "alice" {
			t.Errorf("Expected pending alice second, got %+v", resp.Members[1])
		}
	})

	t.Run("unknown club is empty", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/club/9999/members", nil, 0)
		req.SetPathValue("club_id", "9999")
		w := servePublic(handler.List, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MemberListResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Members == nil || len(resp.Members) != 0 {
			t.Errorf("Expected empty members array, got %v", resp.Members)
		}
	})

	t.Run("invalid club id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/club/abc/members", nil, 0)
		req.SetPathValue("club_id", "abc")
		w := servePublic(handler.List, req)
		testutil.AssertError(t, w, http.StatusBadRequest)
	})
}

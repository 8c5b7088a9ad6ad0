// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterUserRequest, LoginRequest: username, password
  - SubmitApprovalRequest: club_name, club_introduction
  - DecideApprovalRequest: approval_status, approval_opinion
  - ApplyMemberRequest: club_id (user_id optional, must match the session)
  - ApproveMemberRequest: user_id, club_id, status
  - RemoveMemberRequest: member_id
  - CreateActivityRequest / UpdateActivityRequest: activity fields
  - ActivityRequest: activity_id

Fields that must be present use pointers so that a missing key can be told
apart from a zero value.

# Response Types

Every success body carries a message and/or a named collection:

  - MessageResponse: message
  - ApprovalListResponse: approvals
  - MemberListResponse: members
  - ActivityListResponse: activities
  - RegistrationListResponse: registrations
  - CheckinListResponse: checkins
  - ErrorResponse: error

# Domain Types

Rows of the relational store, tagged for both JSON and sqlx:

  - User, Club, ClubApproval, ClubMember
  - ClubActivity, ActivityRegistration, ActivityCheckin

# Constants

User types:

	UserTypeMember  = "member"
	UserTypeFounder = "founder"
	UserTypeAdmin   = "admin"

Approval and membership status:

	pending → approved | rejected

Member roles:

	RoleMember  = "member"
	RoleFounder = "founder"
*/
package models

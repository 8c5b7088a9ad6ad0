// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the clubhub API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - ApprovalHandler: Club creation requests and admin decisions
  - MemberHandler: Membership applications, decisions and removal
  - ActivityHandler: Activity publishing, listing, update and delete
  - RegistrationHandler: Activity sign-up, cancellation and lists
  - CheckinHandler: Attendance for registered users
  - UserHandler: Accounts and the session cookie

Handlers are created via constructor functions that accept *store.Store:

	activityHandler := handlers.NewActivityHandler(st)

# Sessions

Protected handlers expect the router to wrap them with auth.Resolver, which
puts the caller on the request context. callerID answers 401 when it is
missing.

# Club Lifecycle

A club starts as an approval request and is created when an admin approves it:

	POST /club/approval                → SubmitApproval (pending)
	POST /club/approval/{approval_id}  → DecideApproval (admin only)

Approval creates the club, promotes the applicant to founder and records
the founder's membership in one transaction.

# Activities

Only the founder of a club may publish, update or delete its activities.
Members register, may cancel, and check in once per activity:

	POST /activity/register        → Register
	POST /activity/register/cancel → Cancel
	POST /activity/checkin         → Checkin (requires a registration)

# Errors

Every failure is a JSON {"error": "..."} body. Store sentinels map to
status codes: store.ErrNotFound to 404, store.ErrConflict to 400 and
store.ErrNotRegistered to 403. Anything else is logged and answered with 500.
*/
package handlers

package models

import "time"

// User types
const (
	UserTypeMember  = "member"
	UserTypeFounder = "founder"
	UserTypeAdmin   = "admin"
)

// Club approval status constants
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Club member status constants
const (
	MemberPending  = "pending"
	MemberApproved = "approved"
	MemberRejected = "rejected"
)

// Club member roles
const (
	RoleMember  = "member"
	RoleFounder = "founder"
)

// Payment status constants
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Request types
//
// Pointer fields distinguish "absent from the body" from "present but empty".

type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SubmitApprovalRequest struct {
	ClubName         *string `json:"club_name"`
	ClubIntroduction *string `json:"club_introduction"`
}

type DecideApprovalRequest struct {
	ApprovalStatus  *string `json:"approval_status"`
	ApprovalOpinion *string `json:"approval_opinion"`
}

type ApplyMemberRequest struct {
	UserID *int64 `json:"user_id"`
	ClubID *int64 `json:"club_id"`
}

type ApproveMemberRequest struct {
	UserID *int64  `json:"user_id"`
	ClubID *int64  `json:"club_id"`
	Status *string `json:"status"`
}

type RemoveMemberRequest struct {
	MemberID *int64 `json:"member_id"`
}

type CreateActivityRequest struct {
	ClubID              *int64 `json:"club_id"`
	ActivityTitle       string `json:"activity_title"`
	ActivityTime        string `json:"activity_time"`
	ActivityLocation    string `json:"activity_location"`
	RegistrationMethod  string `json:"registration_method"`
	ActivityDescription string `json:"activity_description"`
}

// UpdateActivityRequest only touches the fields present in the body.
type UpdateActivityRequest struct {
	ActivityTitle       *string `json:"activity_title"`
	ActivityTime        *string `json:"activity_time"`
	ActivityLocation    *string `json:"activity_location"`
	RegistrationMethod  *string `json:"registration_method"`
	ActivityDescription *string `json:"activity_description"`
}

// ActivityRequest is the body of register, cancel and check-in calls.
type ActivityRequest struct {
	ActivityID *int64 `json:"activity_id"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

type SubmitApprovalResponse struct {
	Message    string `json:"message"`
	ApprovalID int64  `json:"approval_id"`
}

type DecideApprovalResponse struct {
	Message string `json:"message"`
	ClubID  *int64 `json:"club_id,omitempty"`
}

type ApprovalListResponse struct {
	Approvals []ClubApproval `json:"approvals"`
}

type MemberListResponse struct {
	Members []ClubMember `json:"members"`
}

type CreateActivityResponse struct {
	Message    string `json:"message"`
	ActivityID int64  `json:"activity_id"`
}

type ActivityListResponse struct {
	Message    string         `json:"message"`
	Activities []ClubActivity `json:"activities"`
}

type RegistrationListResponse struct {
	Message       string                 `json:"message"`
	Registrations []ActivityRegistration `json:"registrations"`
}

type CheckinListResponse struct {
	Checkins []ActivityCheckin `json:"checkins"`
}

// Domain types

type User struct {
	ID           int64     `json:"user_id" db:"user_id"`
	Username     string    `json:"username" db:"username"`
	UserType     string    `json:"user_type" db:"user_type"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.UserType == UserTypeAdmin
}

type Club struct {
	ID           int64     `json:"club_id" db:"club_id"`
	Name         string    `json:"club_name" db:"club_name"`
	Introduction string    `json:"club_introduction" db:"club_introduction"`
	FounderID    int64     `json:"founder_id" db:"founder_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type ClubApproval struct {
	ID               int64      `json:"approval_id" db:"approval_id"`
	ClubName         string     `json:"club_name" db:"club_name"`
	ClubIntroduction string     `json:"club_introduction" db:"club_introduction"`
	ApplicantID      int64      `json:"applicant_id" db:"applicant_id"`
	Status           string     `json:"approval_status" db:"approval_status"`
	Opinion          *string    `json:"approval_opinion" db:"approval_opinion"`
	ApprovalTime     *time.Time `json:"approval_time" db:"approval_time"`
	SubmittedAt      time.Time  `json:"submitted_at" db:"submitted_at"`
}

type ClubMember struct {
	ID       int64     `json:"member_id" db:"member_id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	ClubID   int64     `json:"club_id" db:"club_id"`
	Username string    `json:"username" db:"username"`
	JoinDate time.Time `json:"join_date" db:"join_date"`
	Status   string    `json:"member_status" db:"member_status"`
	Role     string    `json:"member_role" db:"member_role"`
}

type ClubActivity struct {
	ID                 int64     `json:"activity_id" db:"activity_id"`
	ClubID             int64     `json:"club_id" db:"club_id"`
	Title              string    `json:"activity_title" db:"activity_title"`
	Time               time.Time `json:"activity_time" db:"activity_time"`
	Location           string    `json:"activity_location" db:"activity_location"`
	RegistrationMethod string    `json:"registration_method" db:"registration_method"`
	Description        string    `json:"activity_description" db:"activity_description"`
	PublishTime        time.Time `json:"publish_time" db:"publish_time"`
}

// ActivityUpdate carries the parsed, optional fields of an update.
// A nil field keeps the stored value.
type ActivityUpdate struct {
	Title              *string
	Time               *time.Time
	Location           *string
	RegistrationMethod *string
	Description        *string
}

type ActivityRegistration struct {
	ID               int64     `json:"registration_id" db:"registration_id"`
	UserID           int64     `json:"user_id" db:"user_id"`
	ActivityID       int64     `json:"activity_id" db:"activity_id"`
	RegistrationDate time.Time `json:"registration_date" db:"registration_date"`
	PaymentStatus    string    `json:"payment_status" db:"payment_status"`
}

type ActivityCheckin struct {
	ID          int64     `json:"checkin_id" db:"checkin_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	ActivityID  int64     `json:"activity_id" db:"activity_id"`
	CheckinTime time.Time `json:"checkin_time" db:"checkin_time"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/clubhub/models"
)

const approvalColumns = `approval_id, club_name, club_introduction, applicant_id,
	approval_status, approval_opinion, approval_time, submitted_at`

func (s *Store) CreateApproval(ctx context.Context, applicantID int64, clubName, introduction string) (int64, error) {
	var id int64
	query := s.db.Rebind(`
		INSERT INTO club_approval (club_name, club_introduction, applicant_id, approval_status, submitted_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING approval_id
	`)
	err := s.db.QueryRowxContext(ctx, query,
		clubName, introduction, applicantID, models.ApprovalPending, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create approval: %w", err)
	}
	return id, nil
}

func (s *Store) GetApproval(ctx context.Context, approvalID int64) (*models.ClubApproval, error) {
	var a models.ClubApproval
	query := s.db.Rebind("SELECT " + approvalColumns + " FROM club_approval WHERE approval_id = ?")
	if err := s.db.GetContext(ctx, &a, query, approvalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return &a, nil
}

// ListApprovals returns every approval, or only those of applicantID when it is non-zero.
func (s *Store) ListApprovals(ctx context.Context, applicantID int64) ([]models.ClubApproval, error) {
	approvals := []models.ClubApproval{}
	var err error
	if applicantID == 0 {
		err = s.db.SelectContext(ctx, &approvals,
			"SELECT "+approvalColumns+" FROM club_approval ORDER BY approval_id")
	} else {
		err = s.db.SelectContext(ctx, &approvals, s.db.Rebind(
			"SELECT "+approvalColumns+" FROM club_approval WHERE applicant_id = ? ORDER BY approval_id"),
			applicantID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	return approvals, nil
}

// DecideApproval moves a pending approval to status. When approved it also
// creates the club, promotes the applicant to founder unless they are an
// admin, and records the founder membership. It returns the new club ID, or
// zero for a rejection.
func (s *Store) DecideApproval(ctx context.Context, approvalID int64, status string, opinion *string) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var a models.ClubApproval
	query := tx.Rebind("SELECT " + approvalColumns + " FROM club_approval WHERE approval_id = ?" + s.lockClause())
	if err := tx.GetContext(ctx, &a, query, approvalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to get approval: %w", err)
	}
	if a.Status != models.ApprovalPending {
		return 0, ErrConflict
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE club_approval
		SET approval_status = ?, approval_opinion = ?, approval_time = ?
		WHERE approval_id = ? AND approval_status = ?
	`), status, opinion, now, approvalID, models.ApprovalPending)
	if err != nil {
		return 0, fmt.Errorf("failed to update approval: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("failed to update approval: %w", err)
	} else if n == 0 {
		return 0, ErrConflict
	}

	var clubID int64
	if status == models.ApprovalApproved {
		err = tx.QueryRowxContext(ctx, tx.Rebind(`
			INSERT INTO club (club_name, club_introduction, founder_id, created_at)
			VALUES (?, ?, ?, ?)
			RETURNING club_id
		`), a.ClubName, a.ClubIntroduction, a.ApplicantID, now).Scan(&clubID)
		if err != nil {
			return 0, fmt.Errorf("failed to create club: %w", err)
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE users SET user_type = ? WHERE user_id = ? AND user_type <> ?
		`), models.UserTypeFounder, a.ApplicantID, models.UserTypeAdmin)
		if err != nil {
			return 0, fmt.Errorf("failed to promote founder: %w", err)
		}

		_, err = tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO club_member (user_id, club_id, join_date, member_status, member_role)
			VALUES (?, ?, ?, ?, ?)
		`), a.ApplicantID, clubID, now, models.MemberApproved, models.RoleFounder)
		if err != nil {
			return 0, fmt.Errorf("failed to add founder membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit approval: %w", err)
	}
	return clubID, nil
}

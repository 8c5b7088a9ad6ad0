// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/clubhub/models"
)

// ApplyMembership records a pending application. An existing approved
// membership or a pending application both yield ErrConflict.
func (s *Store) ApplyMembership(ctx context.Context, userID, clubID int64) (int64, error) {
	var approved int
	query := s.db.Rebind(`
		SELECT COUNT(*) FROM club_member
		WHERE user_id = ? AND club_id = ? AND member_status = ?
	`)
	if err := s.db.GetContext(ctx, &approved, query, userID, clubID, models.MemberApproved); err != nil {
		return 0, fmt.Errorf("failed to check membership: %w", err)
	}
	if approved > 0 {
		return 0, ErrConflict
	}

	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO club_member (user_id, club_id, join_date, member_status, member_role)
		VALUES (?, ?, ?, ?, ?)
		RETURNING member_id
	`), userID, clubID, time.Now().UTC(), models.MemberPending, models.RoleMember).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to apply for membership: %w", err)
	}
	return id, nil
}

// IsClubFounder reports whether userID holds the founder role in clubID.
func (s *Store) IsClubFounder(ctx context.Context, userID, clubID int64) (bool, error) {
	var n int
	query := s.db.Rebind(`
		SELECT COUNT(*) FROM club_member
		WHERE user_id = ? AND club_id = ? AND member_role = ?
	`)
	if err := s.db.GetContext(ctx, &n, query, userID, clubID, models.RoleFounder); err != nil {
		return false, fmt.Errorf("failed to check founder role: %w", err)
	}
	return n > 0, nil
}

// DecideMembership sets the status of the pending application of userID.
// ErrConflict means there was no pending application left to decide.
func (s *Store) DecideMembership(ctx context.Context, userID, clubID int64, status string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE club_member SET member_status = ?
		WHERE user_id = ? AND club_id = ? AND member_status = ?
	`), status, userID, clubID, models.MemberPending)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

func (s *Store) RemoveMember(ctx context.Context, memberID int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM club_member WHERE member_id = ?"), memberID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMembers returns every membership row of a club regardless of status.
func (s *Store) ListMembers(ctx context.Context, clubID int64) ([]models.ClubMember, error) {
	members := []models.ClubMember{}
	query := s.db.Rebind(`
		SELECT cm.member_id, cm.user_id, cm.club_id, u.username, cm.join_date,
			cm.member_status, cm.member_role
		FROM club_member cm
		JOIN users u ON u.user_id = cm.user_id
		WHERE cm.club_id = ?
		ORDER BY cm.member_id
	`)
	if err := s.db.SelectContext(ctx, &members, query, clubID); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

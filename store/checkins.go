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

// Checkin records attendance. The registration is read and the check-in
// written in one transaction; on PostgreSQL the registration row is locked so
// a concurrent cancel cannot slip in between.
func (s *Store) Checkin(ctx context.Context, userID, activityID int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var registrationID int64
	err = tx.GetContext(ctx, &registrationID, tx.Rebind(`
		SELECT registration_id FROM activity_registration
		WHERE user_id = ? AND activity_id = ?`+s.lockClause()), userID, activityID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotRegistered
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check registration: %w", err)
	}

	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
		INSERT INTO activity_checkin (user_id, activity_id, checkin_time)
		VALUES (?, ?, ?)
		RETURNING checkin_id
	`), userID, activityID, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to check in: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit check-in: %w", err)
	}
	return id, nil
}

func (s *Store) ListCheckins(ctx context.Context, activityID int64) ([]models.ActivityCheckin, error) {
	checkins := []models.ActivityCheckin{}
	query := s.db.Rebind(`
		SELECT checkin_id, user_id, activity_id, checkin_time
		FROM activity_checkin
		WHERE activity_id = ?
		ORDER BY checkin_time, checkin_id
	`)
	if err := s.db.SelectContext(ctx, &checkins, query, activityID); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	return checkins, nil
}

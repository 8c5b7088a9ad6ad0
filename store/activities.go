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

const activityColumns = `activity_id, club_id, activity_title, activity_time, activity_location,
	registration_method, activity_description, publish_time`

// CreateActivity inserts an activity. A duplicate title within the club yields ErrConflict.
func (s *Store) CreateActivity(ctx context.Context, a models.ClubActivity) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO club_activity (club_id, activity_title, activity_time, activity_location,
			registration_method, activity_description, publish_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING activity_id
	`), a.ClubID, a.Title, a.Time.UTC(), a.Location, a.RegistrationMethod, a.Description, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to create activity: %w", err)
	}
	return id, nil
}

func (s *Store) GetActivity(ctx context.Context, activityID int64) (*models.ClubActivity, error) {
	var a models.ClubActivity
	query := s.db.Rebind("SELECT " + activityColumns + " FROM club_activity WHERE activity_id = ?")
	if err := s.db.GetContext(ctx, &a, query, activityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &a, nil
}

func (s *Store) ListActivities(ctx context.Context, clubID int64) ([]models.ClubActivity, error) {
	activities := []models.ClubActivity{}
	query := s.db.Rebind("SELECT " + activityColumns + " FROM club_activity WHERE club_id = ? ORDER BY activity_time, activity_id")
	if err := s.db.SelectContext(ctx, &activities, query, clubID); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// UpdateActivity overwrites only the non-nil fields of u.
func (s *Store) UpdateActivity(ctx context.Context, activityID int64, u models.ActivityUpdate) error {
	var t any
	if u.Time != nil {
		t = u.Time.UTC()
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE club_activity SET
			activity_title = COALESCE(?, activity_title),
			activity_time = COALESCE(?, activity_time),
			activity_location = COALESCE(?, activity_location),
			registration_method = COALESCE(?, registration_method),
			activity_description = COALESCE(?, activity_description)
		WHERE activity_id = ?
	`), u.Title, t, u.Location, u.RegistrationMethod, u.Description, activityID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to update activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteActivity removes an activity; its registrations and check-ins cascade.
func (s *Store) DeleteActivity(ctx context.Context, activityID int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind("DELETE FROM club_activity WHERE activity_id = ?"), activityID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

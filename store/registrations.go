// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/clubhub/models"
)

const registrationColumns = "r.registration_id, r.user_id, r.activity_id, r.registration_date, r.payment_status"

// Register signs userID up for activityID. A second registration yields ErrConflict.
func (s *Store) Register(ctx context.Context, userID, activityID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO activity_registration (user_id, activity_id, registration_date, payment_status)
		VALUES (?, ?, ?, ?)
		RETURNING registration_id
	`), userID, activityID, time.Now().UTC(), models.PaymentUnpaid).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to register for activity: %w", err)
	}
	return id, nil
}

func (s *Store) CancelRegistration(ctx context.Context, userID, activityID int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		DELETE FROM activity_registration WHERE user_id = ? AND activity_id = ?
	`), userID, activityID)
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel registration: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListUserRegistrations returns the registrations made by userID.
func (s *Store) ListUserRegistrations(ctx context.Context, userID int64) ([]models.ActivityRegistration, error) {
	regs := []models.ActivityRegistration{}
	query := s.db.Rebind("SELECT " + registrationColumns + `
		FROM activity_registration r
		WHERE r.user_id = ?
		ORDER BY r.registration_id
	`)
	if err := s.db.SelectContext(ctx, &regs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// ListFounderRegistrations returns all registrations for activities of every
// club founded by founderID.
func (s *Store) ListFounderRegistrations(ctx context.Context, founderID int64) ([]models.ActivityRegistration, error) {
	regs := []models.ActivityRegistration{}
	query := s.db.Rebind("SELECT " + registrationColumns + `
		FROM activity_registration r
		JOIN club_activity a ON a.activity_id = r.activity_id
		JOIN club c ON c.club_id = a.club_id
		WHERE c.founder_id = ?
		ORDER BY r.registration_id
	`)
	if err := s.db.SelectContext(ctx, &regs, query, founderID); err != nil {
		return nil, fmt.Errorf("failed to list founder registrations: %w", err)
	}
	return regs, nil
}

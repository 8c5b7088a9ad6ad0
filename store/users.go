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

const userColumns = "user_id, username, user_type, password_hash, created_at"

func (s *Store) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE user_id = ?")
	if err := s.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE username = ?")
	if err := s.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a user and returns its ID. A taken username yields ErrConflict.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash, userType string) (int64, error) {
	var id int64
	query := s.db.Rebind(`
		INSERT INTO users (username, password_hash, user_type, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING user_id
	`)
	err := s.db.QueryRowxContext(ctx, query, username, passwordHash, userType, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// EnsureAdmin creates the admin account, or promotes and resets the password
// of an existing user with that name.
func (s *Store) EnsureAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return s.CreateUser(ctx, username, passwordHash, models.UserTypeAdmin)
	}
	if err != nil {
		return 0, err
	}

	query := s.db.Rebind("UPDATE users SET user_type = ?, password_hash = ? WHERE user_id = ?")
	if _, err := s.db.ExecContext(ctx, query, models.UserTypeAdmin, passwordHash, user.ID); err != nil {
		return 0, fmt.Errorf("failed to promote admin: %w", err)
	}
	return user.ID, nil
}

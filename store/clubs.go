// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/clubhub/models"
)

func (s *Store) GetClub(ctx context.Context, clubID int64) (*models.Club, error) {
	var c models.Club
	query := s.db.Rebind(`
		SELECT club_id, club_name, club_introduction, founder_id, created_at
		FROM club WHERE club_id = ?
	`)
	if err := s.db.GetContext(ctx, &c, query, clubID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club: %w", err)
	}
	return &c, nil
}

// FoundsAnyClub reports whether userID is the founder of at least one club.
func (s *Store) FoundsAnyClub(ctx context.Context, userID int64) (bool, error) {
	var n int
	query := s.db.Rebind("SELECT COUNT(*) FROM club WHERE founder_id = ?")
	if err := s.db.GetContext(ctx, &n, query, userID); err != nil {
		return false, fmt.Errorf("failed to count founded clubs: %w", err)
	}
	return n > 0, nil
}

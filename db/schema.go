// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(Schema(db.DriverName()))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema renders the DDL for the given driver. Only the surrogate key type
// differs between SQLite and PostgreSQL.
func Schema(driverName string) string {
	pk := "BIGSERIAL PRIMARY KEY"
	if IsSQLite(driverName) {
		pk = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return fmt.Sprintf(schema, pk)
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    user_id %[1]s,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL DEFAULT '',
    user_type TEXT NOT NULL DEFAULT 'member' CHECK (user_type IN ('member', 'founder', 'admin')),
    created_at TIMESTAMP NOT NULL
);

-- Clubs
CREATE TABLE IF NOT EXISTS club (
    club_id %[1]s,
    club_name TEXT NOT NULL,
    club_introduction TEXT NOT NULL DEFAULT '',
    founder_id BIGINT NOT NULL REFERENCES users(user_id),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_club_founder_id ON club(founder_id);

-- Club creation requests
CREATE TABLE IF NOT EXISTS club_approval (
    approval_id %[1]s,
    club_name TEXT NOT NULL,
    club_introduction TEXT NOT NULL DEFAULT '',
    applicant_id BIGINT NOT NULL REFERENCES users(user_id),
    approval_status TEXT NOT NULL DEFAULT 'pending' CHECK (approval_status IN ('pending', 'approved', 'rejected')),
    approval_opinion TEXT,
    approval_time TIMESTAMP,
    submitted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_club_approval_applicant_id ON club_approval(applicant_id);

-- Memberships
CREATE TABLE IF NOT EXISTS club_member (
    member_id %[1]s,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    club_id BIGINT NOT NULL REFERENCES club(club_id) ON DELETE CASCADE,
    join_date TIMESTAMP NOT NULL,
    member_status TEXT NOT NULL DEFAULT 'pending' CHECK (member_status IN ('pending', 'approved', 'rejected')),
    member_role TEXT NOT NULL DEFAULT 'member' CHECK (member_role IN ('member', 'founder'))
);

CREATE INDEX IF NOT EXISTS idx_club_member_club_id ON club_member(club_id);
CREATE UNIQUE INDEX IF NOT EXISTS uq_club_member_pending ON club_member(user_id, club_id) WHERE member_status = 'pending';

-- Activities
CREATE TABLE IF NOT EXISTS club_activity (
    activity_id %[1]s,
    club_id BIGINT NOT NULL REFERENCES club(club_id) ON DELETE CASCADE,
    activity_title TEXT NOT NULL,
    activity_time TIMESTAMP NOT NULL,
    activity_location TEXT NOT NULL DEFAULT '',
    registration_method TEXT NOT NULL DEFAULT '',
    activity_description TEXT NOT NULL DEFAULT '',
    publish_time TIMESTAMP NOT NULL,
    UNIQUE (club_id, activity_title)
);

-- Registrations
CREATE TABLE IF NOT EXISTS activity_registration (
    registration_id %[1]s,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    activity_id BIGINT NOT NULL REFERENCES club_activity(activity_id) ON DELETE CASCADE,
    registration_date TIMESTAMP NOT NULL,
    payment_status TEXT NOT NULL DEFAULT 'unpaid',
    UNIQUE (user_id, activity_id)
);

CREATE INDEX IF NOT EXISTS idx_activity_registration_activity_id ON activity_registration(activity_id);

-- Check-ins
CREATE TABLE IF NOT EXISTS activity_checkin (
    checkin_id %[1]s,
    user_id BIGINT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    activity_id BIGINT NOT NULL REFERENCES club_activity(activity_id) ON DELETE CASCADE,
    checkin_time TIMESTAMP NOT NULL,
    UNIQUE (user_id, activity_id)
);

CREATE INDEX IF NOT EXISTS idx_activity_checkin_activity_id ON activity_checkin(activity_id);
`

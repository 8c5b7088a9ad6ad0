// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational store and manages its schema.

# Drivers

Open selects a database/sql driver from Config.DatabaseType:

	sqlite   → modernc.org/sqlite (default, pure Go)
	postgres → github.com/lib/pq
	pgx      → github.com/jackc/pgx/v5/stdlib

SQLite connections get foreign keys switched on and are limited to a single
open connection.

# Schema Creation

CreateSchema is idempotent (uses IF NOT EXISTS):

	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

The same DDL serves both engines; only the surrogate key type is swapped.

# Tables

users: Accounts

	user_id       BIGSERIAL / INTEGER PRIMARY KEY
	username      TEXT NOT NULL UNIQUE
	password_hash TEXT
	user_type     TEXT ('member', 'founder', 'admin')

club: Approved clubs

	club_id    PRIMARY KEY
	club_name  TEXT NOT NULL
	founder_id → users(user_id)

club_approval: Club creation requests

	approval_id      PRIMARY KEY
	applicant_id     → users(user_id)
	approval_status  TEXT ('pending', 'approved', 'rejected')
	approval_opinion TEXT (nullable)
	approval_time    TIMESTAMP (nullable, set when decided)

club_member: Membership applications and roles

	member_id     PRIMARY KEY
	user_id       → users(user_id)
	club_id       → club(club_id)
	member_status TEXT ('pending', 'approved', 'rejected')
	member_role   TEXT ('member', 'founder')

club_activity: Activities published by a club

	activity_id    PRIMARY KEY
	club_id        → club(club_id) ON DELETE CASCADE
	activity_title TEXT, UNIQUE per club

activity_registration: Who signed up for what

	UNIQUE (user_id, activity_id)
	activity_id → club_activity ON DELETE CASCADE

activity_checkin: Attendance

	UNIQUE (user_id, activity_id)
	activity_id → club_activity ON DELETE CASCADE

# Relationships

	users ─┬─< club_approval
	       ├─< club (founder)
	       └─< club_member >── club ──< club_activity ─┬─< activity_registration
	                                                   └─< activity_checkin

# Indexes

  - uq_club_member_pending: at most one pending application per (user, club)
  - idx_club_member_club_id: member lists
  - idx_activity_registration_activity_id: founder registration lists
  - idx_activity_checkin_activity_id: check-in lists
*/
package db

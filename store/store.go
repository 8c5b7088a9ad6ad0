// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/clubhub/db"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a unique violation or when a state
	// transition was already taken by someone else.
	ErrConflict = errors.New("conflict")
	// ErrNotRegistered is returned when checking in without a registration.
	ErrNotRegistered = errors.New("not registered")
)

const pgUniqueViolation = "23505"

type Store struct {
	db *sqlx.DB
}

func New(conn *sqlx.DB) *Store {
	return &Store{db: conn}
}

// DB exposes the underlying handle for health checks and tests.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// lockClause returns a row lock suffix on engines that support it.
func (s *Store) lockClause() string {
	if db.IsSQLite(s.db.DriverName()) {
		return ""
	}
	return " FOR UPDATE"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}

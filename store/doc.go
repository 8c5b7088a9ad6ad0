// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence gateway: every query the handlers run lives here.

# Usage

	s := store.New(conn) // conn from db.Open
	user, err := s.GetUser(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		// 404
	}

Queries are written with ? placeholders and rebound for the active driver,
so the same code runs on SQLite and PostgreSQL.

# Errors

  - ErrNotFound: the addressed row does not exist
  - ErrConflict: unique violation, or a state transition already taken
  - ErrNotRegistered: check-in without a registration

Anything else is a storage failure wrapped with context.

# Concurrency

Races are settled by the database, not by earlier reads:

  - unique constraints for users, registrations, check-ins, activity titles
    and pending applications
  - conditional UPDATEs (status = 'pending') whose affected-row count decides
    who won
  - transactions for the approval decision and for check-in
*/
package store

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the clubhub API server.

clubhub is the backend for a campus student-club platform: students ask to
found clubs, admins approve them, founders manage members and publish
activities, and members register for and check in to those activities.

# Starting the Server

With no configuration the server listens on :3318 and keeps its data in a
local SQLite file:

	go run .

PostgreSQL via lib/pq or pgx:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .
	go run . -t pgx -d "postgres://..."

A .env file in the working directory is loaded first.

# Configuration

Flags win over environment variables, which win over the TOML file named by
-c or CONFIG_FILE:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - DATABASE_URL (-d): DSN or SQLite path (default: clubhub.db)
  - SESSION_HASH_KEY (-session-key): Signs the session cookie
  - SESSION_BLOCK_KEY (-session-block-key): Also encrypts it (16, 24 or 32 bytes)
  - ADMIN_USERNAME, ADMIN_PASSWORD: Admin account ensured at startup
  - LOG_LEVEL, LOG_FORMAT: slog level and text or json output
  - RATE_LIMIT, RATE_BURST: Per-client request budget
  - TRUSTED_PROXIES (-trusted-proxies): Proxy IPs or CIDRs whose X-Forwarded-For is believed
  - CORS_ORIGINS (-cors-origins): Browser origins allowed to send the session cookie

Without a session key the cookie carries the plain user ID, which is only
suitable for development; the server logs a warning at startup in that mode.

# Architecture

  - handlers: HTTP request handlers (approvals, members, activities, registrations, check-ins, users)
  - router: Route definitions using Go 1.22+ routing, metrics and rate limiting
  - middleware: CORS, logging, Prometheus metrics, rate limiter, JSON helpers
  - auth: Session cookie resolution
  - store: SQL access and state transitions
  - models: Request, response and domain types
  - db: Connection setup and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file (default: clubhub.db)
  - DatabaseType: sqlite, postgres or pgx (default: sqlite)
  - ConfigFile: Optional TOML file
  - SessionHashKey / SessionBlockKey: Session cookie keys
  - AdminUsername / AdminPassword: Bootstrap admin account
  - LogLevel / LogFormat: debug|info|warn|error, text|json
  - RateLimit / RateBurst: Per-client token bucket (default: 20/s, burst 40)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	-c                  Config file
	-session-key        Session signing key
	-session-block-key  Session encryption key
	-admin-user         Admin username
	-admin-password     Admin password
	-log-level          Log level
	-log-format         Log format
	-rate-limit         Requests per second
	-rate-burst         Burst size

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	CONFIG_FILE       → -c
	SESSION_HASH_KEY  → -session-key
	SESSION_BLOCK_KEY → -session-block-key
	ADMIN_USERNAME    → -admin-user
	ADMIN_PASSWORD    → -admin-password
	LOG_LEVEL         → -log-level
	LOG_FORMAT        → -log-format
	RATE_LIMIT        → -rate-limit
	RATE_BURST        → -rate-burst

main loads a .env file into the environment before ParseFlags runs.

# Config File

The TOML file has the lowest precedence, below flags and environment:

	port = 3318
	database_type = "postgres"
	database_url = "postgres://clubhub@localhost/clubhub?sslmode=disable"
	log_format = "json"

# Validation

ParseFlags returns an error when:

  - a non-SQLite database has no URL
  - ADMIN_USERNAME is set without ADMIN_PASSWORD
  - SESSION_BLOCK_KEY is set without SESSION_HASH_KEY, or is not 16, 24 or 32 bytes
  - a numeric environment variable does not parse

Without SESSION_HASH_KEY, session cookies are plain user IDs. Use this only
for local development.
*/
package cliparse

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	ConfigFile      string
	SessionHashKey  string
	SessionBlockKey string
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
	LogFormat       string
	RateLimit       float64
	RateBurst       int

	// TrustedProxies lists the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed.
	TrustedProxies []netip.Prefix
	// AllowedOrigins lists the browser origins granted credentialed CORS.
	AllowedOrigins []string
}

// fileConfig mirrors Config for the optional TOML file.
type fileConfig struct {
	Port            int      `toml:"port"`
	DatabaseURL     string   `toml:"database_url"`
	DatabaseType    string   `toml:"database_type"`
	SessionHashKey  string   `toml:"session_hash_key"`
	SessionBlockKey string   `toml:"session_block_key"`
	AdminUsername   string   `toml:"admin_username"`
	AdminPassword   string   `toml:"admin_password"`
	LogLevel        string   `toml:"log_level"`
	LogFormat       string   `toml:"log_format"`
	RateLimit       float64  `toml:"rate_limit"`
	RateBurst       int      `toml:"rate_burst"`
	TrustedProxies  []string `toml:"trusted_proxies"`
	AllowedOrigins  []string `toml:"cors_origins"`
}

// ParseFlags resolves configuration: flags, then environment, then the TOML
// file, then defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("clubhub", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or SQLite file")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or pgx)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Path to a TOML config file")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionHashKey, "session-key", "", "Session cookie signing key (prefer env)")
	fs.StringVar(&cfg.SessionBlockKey, "session-block-key", "", "Session cookie encryption key (prefer env)")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Bootstrap admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Bootstrap admin password (prefer env)")

	// Ambient
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", 0, "Requests per second per client")
	fs.IntVar(&cfg.RateBurst, "rate-burst", 0, "Burst size per client")
	var trustedProxies, allowedOrigins string
	fs.StringVar(&trustedProxies, "trusted-proxies", "", "Comma-separated proxy IPs or CIDRs whose forwarding headers are trusted")
	fs.StringVar(&allowedOrigins, "cors-origins", "", "Comma-separated origins allowed to call the API from a browser")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file fileConfig
	if cfg.ConfigFile != "" {
		if _, err := toml.DecodeFile(cfg.ConfigFile, &file); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Fall back to environment variables, then the file
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, "sqlite")
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "clubhub.db"
	}

	cfg.SessionHashKey = firstNonEmpty(cfg.SessionHashKey, os.Getenv("SESSION_HASH_KEY"), file.SessionHashKey)
	cfg.SessionBlockKey = firstNonEmpty(cfg.SessionBlockKey, os.Getenv("SESSION_BLOCK_KEY"), file.SessionBlockKey)
	if cfg.SessionBlockKey != "" && cfg.SessionHashKey == "" {
		return Config{}, errors.New("SESSION_BLOCK_KEY requires SESSION_HASH_KEY")
	}
	if n := len(cfg.SessionBlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return Config{}, errors.New("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes")
	}

	cfg.AdminUsername = firstNonEmpty(cfg.AdminUsername, os.Getenv("ADMIN_USERNAME"), file.AdminUsername)
	cfg.AdminPassword = firstNonEmpty(cfg.AdminPassword, os.Getenv("ADMIN_PASSWORD"), file.AdminPassword)
	if cfg.AdminUsername != "" && cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required when ADMIN_USERNAME is set")
	}

	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, "info")
	cfg.LogFormat = firstNonEmpty(cfg.LogFormat, os.Getenv("LOG_FORMAT"), file.LogFormat, "text")

	if cfg.RateLimit == 0 {
		if s := os.Getenv("RATE_LIMIT"); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = v
		} else if file.RateLimit != 0 {
			cfg.RateLimit = file.RateLimit
		} else {
			cfg.RateLimit = 20
		}
	}
	if cfg.RateBurst == 0 {
		if s := os.Getenv("RATE_BURST"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid RATE_BURST env variable")
			}
			cfg.RateBurst = v
		} else if file.RateBurst != 0 {
			cfg.RateBurst = file.RateBurst
		} else {
			cfg.RateBurst = 40
		}
	}

	proxies := splitList(firstNonEmpty(trustedProxies, os.Getenv("TRUSTED_PROXIES")))
	if len(proxies) == 0 {
		proxies = file.TrustedProxies
	}
	for _, entry := range proxies {
		prefix, err := parsePrefix(entry)
		if err != nil {
			return Config{}, fmt.Errorf("invalid trusted proxy %q: %w", entry, err)
		}
		cfg.TrustedProxies = append(cfg.TrustedProxies, prefix)
	}

	cfg.AllowedOrigins = splitList(firstNonEmpty(allowedOrigins, os.Getenv("CORS_ORIGINS")))
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	}

	return cfg, nil
}

// parsePrefix accepts a CIDR or a bare address, which covers just that host.
func parsePrefix(entry string) (netip.Prefix, error) {
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, err
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

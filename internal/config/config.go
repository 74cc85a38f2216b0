package config

import (
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppEnv string
	Port   string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver          string
	DBConnection      string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBAcquireTimeout  time.Duration // Bounded wait for a pooled connection before answering 503
	MigrateOnStart    bool

	// Security
	JWTSecret string
	JWTExpiry time.Duration // Lifetime of tokens minted by the token command

	// Share links
	ShareRateLimit  int
	ShareRateWindow time.Duration
	TrustedProxies  []netip.Prefix // Peers whose X-Forwarded-For / X-Real-IP are believed

	// Observability (optional)
	SentryDSN string

	// Image storage (S3-compatible, optional: without a bucket image URLs are disabled)
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiry time.Duration
	ImagePrefix     string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppEnv: envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:   envString("PORT", "8090"),

		// Database
		DBDriver:          envString("DB_DRIVER", "sqlite"),
		DBConnection:      envString("DB_CONNECTION", "./data/albums.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),
		DBMaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		DBAcquireTimeout:  envDuration("DB_ACQUIRE_TIMEOUT", 5*time.Second),
		MigrateOnStart:    envBool("MIGRATE_ON_START", true),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days

		// Share links
		ShareRateLimit:  envInt("SHARE_RATE_LIMIT", 60),
		ShareRateWindow: envDuration("SHARE_RATE_WINDOW", time.Minute),
		TrustedProxies:  envPrefixes("TRUSTED_PROXIES"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Image storage
		S3Region:        envString("S3_REGION", "us-east-1"),
		S3Bucket:        envString("S3_BUCKET", ""),
		S3AccessKey:     envString("S3_ACCESS_KEY", ""),
		S3SecretKey:     envString("S3_SECRET_KEY", ""),
		S3Endpoint:      envString("S3_ENDPOINT", ""),
		S3PresignExpiry: envDuration("S3_PRESIGN_EXPIRY", time.Hour),
		ImagePrefix:     envString("IMAGE_PREFIX", "images"),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction rejects settings that are only tolerable on a laptop.
func validateProduction(cfg *Config) {
	if len(cfg.JWTSecret) < 32 {
		slog.Error("production deployment requires a JWT_SECRET of at least 32 bytes")
		os.Exit(1)
	}
	if cfg.DBAcquireTimeout <= 0 {
		slog.Error("production deployment requires a positive DB_ACQUIRE_TIMEOUT",
			"value", cfg.DBAcquireTimeout)
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envPrefixes reads a comma-separated list of CIDRs or bare IPs. Invalid
// entries are skipped with a warning.
func envPrefixes(key string) []netip.Prefix {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var prefixes []netip.Prefix
	for _, entry := range strings.Split(v, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			a = a.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		slog.Warn("config invalid proxy address, skipping", "key", key, "value", entry)
	}
	return prefixes
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// StorageEnabled reports whether image URLs can be presigned.
func (c *Config) StorageEnabled() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy of the config without secrets or credentials.
// Safe to log at startup.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppEnv: c.AppEnv,
		Port:   c.Port,

		DBDriver:          c.DBDriver,
		DBMaxOpenConns:    c.DBMaxOpenConns,
		DBMaxIdleConns:    c.DBMaxIdleConns,
		DBConnMaxLifetime: c.DBConnMaxLifetime,
		DBAcquireTimeout:  c.DBAcquireTimeout,
		MigrateOnStart:    c.MigrateOnStart,

		JWTExpiry: c.JWTExpiry,

		ShareRateLimit:  c.ShareRateLimit,
		ShareRateWindow: c.ShareRateWindow,
		TrustedProxies:  c.TrustedProxies,

		S3Region:        c.S3Region,
		S3Bucket:        c.S3Bucket,
		S3Endpoint:      c.S3Endpoint,
		S3PresignExpiry: c.S3PresignExpiry,
		ImagePrefix:     c.ImagePrefix,
	}
}

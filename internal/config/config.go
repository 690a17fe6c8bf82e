package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   int

	// Postgres (pgxpool DSN)
	DBDSN string

	// Redis (url form: redis://[:pass@]host:port/db). Empty disables the
	// cache and the redis-backed rate limiter.
	RedisURL string

	// Event detail cache
	CacheEventTTL time.Duration

	// Rate limit
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	// RabbitMQ. Empty in dev falls back to a no-op publisher.
	RabbitURL      string
	RabbitExchange string

	// Stat service
	StatsURL string
	AppName  string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.Port = getInt("PORT", 8080)

	// Postgres: prefer DATABASE_URL if present, else build from POSTGRES_*.
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL != "" {
		cfg.DBDSN = dbURL
	} else {
		addr := getEnv("POSTGRES_ADDR", "")
		user := getEnv("POSTGRES_USER", "")
		pass := getEnv("POSTGRES_PASSWORD", "")
		db := getEnv("POSTGRES_DB", "")
		sslmode := getEnv("POSTGRES_SSLMODE", "disable")
		cfg.DBDSN = buildPostgresURL(addr, user, pass, db, sslmode)
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheEventTTL = getDuration("CACHE_EVENT_TTL", 5*time.Minute)

	cfg.RLEnabled = getBool("RL_ENABLED", true)
	cfg.RLLimit = getInt("RL_REQUESTS_LIMIT", 100)
	cfg.RLWindow = time.Duration(getInt("RL_WINDOW_SECONDS", 60)) * time.Second

	cfg.RabbitURL = getEnv("RABBITMQ_URL", "")
	cfg.RabbitExchange = getEnv("RABBITMQ_EXCHANGE", "eventhub.events")

	cfg.StatsURL = getEnv("STATS_URL", "http://localhost:9090")
	cfg.AppName = getEnv("APP_NAME", "eventhub")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	// Fail fast on misconfiguration.
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("missing database config: provide DATABASE_URL or POSTGRES_ADDR/POSTGRES_USER/POSTGRES_PASSWORD/POSTGRES_DB")
	}
	if cfg.AppEnv != "dev" && cfg.RabbitURL == "" {
		return nil, fmt.Errorf("missing RABBITMQ_URL (required when APP_ENV != dev)")
	}

	return cfg, nil
}

// StatConfig configures the stat service binary.
type StatConfig struct {
	Port  int
	DBDSN string

	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string
}

func LoadStat() (*StatConfig, error) {
	_ = godotenv.Load()

	cfg := &StatConfig{}
	cfg.Port = getInt("STAT_PORT", 9090)

	dbURL := strings.TrimSpace(os.Getenv("STAT_DATABASE_URL"))
	if dbURL == "" {
		addr := getEnv("STAT_POSTGRES_ADDR", "")
		user := getEnv("STAT_POSTGRES_USER", "")
		pass := getEnv("STAT_POSTGRES_PASSWORD", "")
		db := getEnv("STAT_POSTGRES_DB", "")
		sslmode := getEnv("STAT_POSTGRES_SSLMODE", "disable")
		dbURL = buildPostgresURL(addr, user, pass, db, sslmode)
	}
	cfg.DBDSN = dbURL

	cfg.RLEnabled = getBool("RL_ENABLED", true)
	cfg.RLLimit = getInt("RL_REQUESTS_LIMIT", 300)
	cfg.RLWindow = time.Duration(getInt("RL_WINDOW_SECONDS", 60)) * time.Second

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("missing database config: provide STAT_DATABASE_URL or STAT_POSTGRES_*")
	}
	return cfg, nil
}

// buildPostgresURL builds a postgres URL DSN (handles special characters).
func buildPostgresURL(addr, user, pass, db, sslmode string) string {
	if strings.TrimSpace(addr) == "" || strings.TrimSpace(user) == "" || strings.TrimSpace(db) == "" {
		return ""
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   strings.TrimSpace(addr),
		Path:   "/" + strings.TrimPrefix(strings.TrimSpace(db), "/"),
	}
	if pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}

	q := url.Values{}
	if strings.TrimSpace(sslmode) != "" {
		q.Set("sslmode", strings.TrimSpace(sslmode))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

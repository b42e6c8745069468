package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	HealthCheck HealthCheckConfig

	MigrationsDir string
}

type AppConfig struct {
	AppName          string
	Environment      string
	HTTPPort         string
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type HealthCheckConfig struct {
	CacheTTL      time.Duration
	WarmInterval  time.Duration
	WarmLookback  time.Duration
	WarmWorkers   int
	WarmRateLimit int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads the server configuration. APP_NAME, APP_ENV and HTTP_PORT are
// required.
func Load() (Config, error) {
	return load(true)
}

// LoadTool reads the configuration for command line tools, which need the
// stores but not the HTTP settings.
func LoadTool() (Config, error) {
	return load(false)
}

func load(serving bool) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" && serving {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:          req("APP_NAME"),
		Environment:      req("APP_ENV"),
		HTTPPort:         req("HTTP_PORT"),
		CORSAllowOrigins: splitList(opt("CORS_ALLOW_ORIGINS"), []string{"*"}),
	}
	if cfg.App.AppName == "" {
		cfg.App.AppName = "datatrail"
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        durationOr(opt("DB_CONNECT_TIMEOUT"), 0),
		PoolMaxConns:          int32(intOr(opt("DB_POOL_MAX_CONNS"), 0)),
		PoolMinConns:          int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   durationOr(opt("DB_POOL_MAX_CONN_LIFETIME"), 0),
		PoolMaxConnIdleTime:   durationOr(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 0),
		PoolHealthCheckPeriod: durationOr(opt("DB_POOL_HEALTH_CHECK_PERIOD"), 0),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Redis = RedisConfig{
		Host:     stringOr(opt("REDIS_HOST"), "localhost"),
		Port:     stringOr(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       intOr(opt("REDIS_DB"), 0),
		TTL:      time.Duration(intOr(opt("REDIS_TTL"), 600)) * time.Second,
	}

	cfg.HealthCheck = HealthCheckConfig{
		CacheTTL:      time.Duration(intOr(opt("HEALTHCHECK_CACHE_TTL"), 60)) * time.Second,
		WarmInterval:  durationOr(opt("HEALTHCHECK_WARM_INTERVAL"), 0),
		WarmLookback:  time.Duration(intOr(opt("HEALTHCHECK_WARM_LOOKBACK_HOURS"), 24)) * time.Hour,
		WarmWorkers:   intOr(opt("HEALTHCHECK_WARM_WORKERS"), 4),
		WarmRateLimit: intOr(opt("HEALTHCHECK_WARM_RPS"), 0),
	}

	cfg.MigrationsDir = stringOr(opt("MIGRATIONS_DIR"), "migrations")

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func durationOr(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func splitList(raw string, def []string) []string {
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return def
	}
	return out
}

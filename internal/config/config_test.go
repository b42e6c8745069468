package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_NAME", "datatrail")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "5000")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, key := range []string{"APP_NAME", "APP_ENV", "HTTP_PORT"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("HEALTHCHECK_CACHE_TTL", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("DB_SSL_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != "6379" {
		t.Fatalf("unexpected redis defaults %+v", cfg.Redis)
	}
	if cfg.HealthCheck.CacheTTL != time.Minute {
		t.Fatalf("expected 60s cache ttl, got %s", cfg.HealthCheck.CacheTTL)
	}
	if len(cfg.App.CORSAllowOrigins) != 1 || cfg.App.CORSAllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.App.CORSAllowOrigins)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("unexpected migrations dir %q", cfg.MigrationsDir)
	}
	if cfg.Database.DBSSLMode != "disable" {
		t.Fatalf("unexpected ssl mode %q", cfg.Database.DBSSLMode)
	}
}

func TestLoad_ParsesOverridesAndIgnoresGarbage(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("HEALTHCHECK_WARM_INTERVAL", "15m")
	t.Setenv("HEALTHCHECK_WARM_WORKERS", "not-a-number")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Database.PoolMaxConns != 12 || cfg.Database.ConnectTimeout != 3*time.Second {
		t.Fatalf("unexpected db config %+v", cfg.Database)
	}
	if cfg.HealthCheck.WarmInterval != 15*time.Minute {
		t.Fatalf("unexpected warm interval %s", cfg.HealthCheck.WarmInterval)
	}
	if cfg.HealthCheck.WarmWorkers != 4 {
		t.Fatalf("expected default workers, got %d", cfg.HealthCheck.WarmWorkers)
	}
	if len(cfg.App.CORSAllowOrigins) != 2 || cfg.App.CORSAllowOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins %v", cfg.App.CORSAllowOrigins)
	}
}

func TestLoadTool_DoesNotRequireHTTPSettings(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadTool()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.AppName != "datatrail" {
		t.Fatalf("AppName = %q, want default", cfg.App.AppName)
	}
	if cfg.Database.DBHost != "db.internal" {
		t.Fatalf("DBHost = %q", cfg.Database.DBHost)
	}
}

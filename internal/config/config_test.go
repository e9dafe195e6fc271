package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != 8080 || cfg.App.Addr() != ":8080" {
		t.Errorf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Redis.Enabled {
		t.Error("redis should be disabled by default")
	}
	if cfg.Redis.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.Redis.CacheTTL)
	}
	if cfg.Realtime.Provider != "none" || cfg.SMS.Provider != "none" || cfg.Push.Provider != "none" {
		t.Errorf("optional providers should default to none: %s %s %s",
			cfg.Realtime.Provider, cfg.SMS.Provider, cfg.Push.Provider)
	}
	if !reflect.DeepEqual(cfg.Security.CORSAllowedOrigins, []string{"*"}) {
		t.Errorf("CORSAllowedOrigins = %v", cfg.Security.CORSAllowedOrigins)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ambulance")
	t.Setenv("MAPS_PROVIDER", "mapbox")
	t.Setenv("MAPBOX_TIMEOUT", "3s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REALTIME_PROVIDER", "redis")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("Port = %d", cfg.App.Port)
	}
	if cfg.Database.Driver != DriverPostgres || cfg.Database.Postgres.URL != "postgres://localhost/ambulance" {
		t.Errorf("unexpected database config: %+v", cfg.Database.Postgres)
	}
	if cfg.Maps.Provider != "mapbox" || cfg.Maps.Mapbox.Timeout != 3*time.Second {
		t.Errorf("unexpected maps config: %+v", cfg.Maps.Mapbox)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSAllowedOrigins, want) {
		t.Errorf("CORSAllowedOrigins = %v, want %v", cfg.Security.CORSAllowedOrigins, want)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}, "DB_DRIVER"},
		{"unknown maps provider", map[string]string{"MAPS_PROVIDER": "here"}, "MAPS_PROVIDER"},
		{"unknown storage", map[string]string{"STORAGE_PROVIDER": "ftp"}, "STORAGE_PROVIDER"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"redis relay without redis", map[string]string{"REALTIME_PROVIDER": "redis"}, "REDIS_ENABLED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want mention of %s", err, tt.want)
			}
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "not-a-number")
	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}

	t.Setenv("TEST_BOOL", "1")
	if !getEnvAsBool("TEST_BOOL", false) {
		t.Error("getEnvAsBool should parse 1")
	}

	t.Setenv("TEST_DURATION", "90s")
	if got := getEnvAsDuration("TEST_DURATION", 0); got != 90*time.Second {
		t.Errorf("getEnvAsDuration = %v", got)
	}
}

func TestAppConfig_IsProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.App.IsProduction() {
		t.Error("APP_ENV=production should report production")
	}

	if (&AppConfig{Environment: "development"}).IsProduction() {
		t.Error("development is not production")
	}
}

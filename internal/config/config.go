package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       *AppConfig       `yaml:"app"`
	Log       *LogConfig       `yaml:"log"`
	Database  *DatabaseConfig  `yaml:"database"`
	Redis     *RedisConfig     `yaml:"redis"`
	Maps      *MapsConfig      `yaml:"maps"`
	Realtime  *RealtimeConfig  `yaml:"realtime"`
	SMS       *SMSConfig       `yaml:"sms"`
	Push      *PushConfig      `yaml:"push"`
	Storage   *StorageConfig   `yaml:"storage"`
	WebSocket *WebSocketConfig `yaml:"websocket"`
	Security  *SecurityConfig  `yaml:"security"`
}

type AppConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Environment     string        `yaml:"environment"`
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	Debug           bool          `yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	Caller bool   `yaml:"caller"`
}

type SecurityConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
}

// Load reads the environment into a Config and rejects unknown provider names.
func Load() (*Config, error) {
	config := &Config{
		App:       loadAppConfig(),
		Log:       loadLogConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Maps:      loadMapsConfig(),
		Realtime:  loadRealtimeConfig(),
		SMS:       loadSMSConfig(),
		Push:      loadPushConfig(),
		Storage:   loadStorageConfig(),
		WebSocket: loadWebSocketConfig(),
		Security:  loadSecurityConfig(),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	checks := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"DB_DRIVER", c.Database.Driver, []string{DriverSQLite, DriverPostgres, DriverMongoDB}},
		{"MAPS_PROVIDER", c.Maps.Provider, []string{"google", "mapbox"}},
		{"REALTIME_PROVIDER", c.Realtime.Provider, []string{"firebase", "redis", "none"}},
		{"SMS_PROVIDER", c.SMS.Provider, []string{"twilio", "sns", "none"}},
		{"PUSH_PROVIDER", c.Push.Provider, []string{"fcm", "none"}},
		{"STORAGE_PROVIDER", c.Storage.Provider, []string{"s3", "gcs", "local", "none"}},
		{"LOG_FORMAT", c.Log.Format, []string{"json", "text"}},
	}

	for _, check := range checks {
		if !contains(check.allowed, check.value) {
			return fmt.Errorf("invalid %s %q: must be one of %s", check.name, check.value, strings.Join(check.allowed, ", "))
		}
	}

	if c.Database.Driver == DriverPostgres && c.Database.Postgres.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when DB_DRIVER is %s", DriverPostgres)
	}
	if c.Realtime.Provider == "redis" && !c.Redis.Enabled {
		return fmt.Errorf("REALTIME_PROVIDER redis requires REDIS_ENABLED=true")
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (a *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:            getEnv("APP_NAME", "ambulance-live-tracking"),
		Version:         getEnv("APP_VERSION", "1.0.0"),
		Environment:     getEnv("APP_ENV", "development"),
		Port:            getEnvAsInt("APP_PORT", 8080),
		Host:            getEnv("APP_HOST", ""),
		Debug:           getEnvAsBool("APP_DEBUG", false),
		ReadTimeout:     getEnvAsDuration("APP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("APP_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func loadLogConfig() *LogConfig {
	return &LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
		Output: getEnv("LOG_OUTPUT", "stdout"),
		Caller: getEnvAsBool("LOG_CALLER", false),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsSlice splits on commas and drops blank entries.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// IsProduction reports whether APP_ENV is "production".
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

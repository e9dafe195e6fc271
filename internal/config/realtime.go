package config

import (
	"time"
)

// RealtimeConfig selects where location samples and trip snapshots are
// published. The in-process websocket hub always receives them as well.
type RealtimeConfig struct {
	Provider  string          `yaml:"provider"`
	Firebase  *FirebaseConfig `yaml:"firebase"`
	KeyPrefix string          `yaml:"key_prefix"`
	TTL       time.Duration   `yaml:"ttl"`
}

type FirebaseConfig struct {
	DatabaseURL     string `yaml:"database_url"`
	CredentialsFile string `yaml:"credentials_file"`
	ProjectID       string `yaml:"project_id"`
}

func loadRealtimeConfig() *RealtimeConfig {
	return &RealtimeConfig{
		Provider: getEnv("REALTIME_PROVIDER", "none"),
		Firebase: &FirebaseConfig{
			DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		KeyPrefix: getEnv("REALTIME_REDIS_PREFIX", "live:"),
		TTL:       getEnvAsDuration("REALTIME_REDIS_TTL", 24*time.Hour),
	}
}

package config

type PushConfig struct {
	Provider string     `yaml:"provider"`
	FCM      *FCMConfig `yaml:"fcm"`
}

type FCMConfig struct {
	Credentials string `yaml:"credentials_file"`
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Provider: getEnv("PUSH_PROVIDER", "none"),
		FCM: &FCMConfig{
			Credentials: getEnv("FCM_CREDENTIALS_FILE", ""),
		},
	}
}

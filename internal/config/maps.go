package config

import (
	"time"
)

type MapsConfig struct {
	Provider   string            `yaml:"provider"`
	GoogleMaps *GoogleMapsConfig `yaml:"google_maps"`
	Mapbox     *MapboxConfig     `yaml:"mapbox"`
}

type GoogleMapsConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type MapboxConfig struct {
	AccessToken string        `yaml:"access_token"`
	BaseURL     string        `yaml:"base_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider: getEnv("MAPS_PROVIDER", "google"),
		GoogleMaps: &GoogleMapsConfig{
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL: getEnv("GOOGLE_MAPS_BASE_URL", ""),
		},
		Mapbox: &MapboxConfig{
			AccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
			BaseURL:     getEnv("MAPBOX_BASE_URL", ""),
			Timeout:     getEnvAsDuration("MAPBOX_TIMEOUT", 10*time.Second),
		},
	}
}

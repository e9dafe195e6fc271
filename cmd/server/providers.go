package main

import (
	"context"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/config"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/cache"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/maps"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/push"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/realtime"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/sms"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/storage"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"
)

// The helpers below return interface values and an explicit nil when a
// provider is switched off, so services can test for nil.

func newDirectionsProvider(cfg *config.MapsConfig) (maps.DirectionsProvider, error) {
	switch cfg.Provider {
	case "mapbox":
		return maps.NewMapboxProvider(&maps.MapboxConfig{
			AccessToken: cfg.Mapbox.AccessToken,
			BaseURL:     cfg.Mapbox.BaseURL,
			Timeout:     cfg.Mapbox.Timeout,
		}), nil
	default:
		provider, err := maps.NewGoogleMapsProvider(&maps.GoogleMapsConfig{
			APIKey:  cfg.GoogleMaps.APIKey,
			BaseURL: cfg.GoogleMaps.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create google maps client: %w", err)
		}
		return provider, nil
	}
}

// newRelay always keeps a memory copy, last, so live status falls back to it
// only when the hosted store has nothing or fails. With redis the hub is fed
// through the pub/sub bridge instead of directly, which lets every
// instance's dashboards see every instance's writes.
func newRelay(ctx context.Context, cfg *config.Config, redisCache *cache.RedisCache, hub *websocket.Hub, log *logger.Logger) (realtime.Relay, error) {
	var relays []realtime.Relay

	switch cfg.Realtime.Provider {
	case "firebase":
		firebaseRelay, err := realtime.NewFirebaseRelay(ctx, &realtime.FirebaseConfig{
			DatabaseURL:     cfg.Realtime.Firebase.DatabaseURL,
			CredentialsFile: cfg.Realtime.Firebase.CredentialsFile,
			ProjectID:       cfg.Realtime.Firebase.ProjectID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to firebase: %w", err)
		}
		relays = append(relays, firebaseRelay, realtime.NewHubRelay(hub))

	case "redis":
		if redisCache == nil {
			return nil, fmt.Errorf("REALTIME_PROVIDER=redis requires REDIS_ENABLED=true")
		}
		relays = append(relays, realtime.NewRedisRelay(redisCache, cfg.Realtime.KeyPrefix, cfg.Realtime.TTL))
		go realtime.BridgeRedisToHub(ctx, redisCache, cfg.Realtime.KeyPrefix, hub, log)

	default:
		relays = append(relays, realtime.NewHubRelay(hub))
	}

	relays = append(relays, realtime.NewMemoryRelay())
	return realtime.NewFanout(relays...), nil
}

func newSMSProvider(ctx context.Context, cfg *config.SMSConfig) (sms.SMSProvider, error) {
	switch cfg.Provider {
	case "twilio":
		return sms.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber), nil
	case "sns":
		provider, err := sms.NewAWSSNSProvider(ctx, cfg.AWS.Region, cfg.AWS.SenderID)
		if err != nil {
			return nil, fmt.Errorf("failed to create sns client: %w", err)
		}
		return provider, nil
	default:
		return nil, nil
	}
}

func newPushProvider(ctx context.Context, cfg *config.PushConfig) (push.PushProvider, error) {
	if cfg.Provider != "fcm" {
		return nil, nil
	}
	provider, err := push.NewFCMProvider(ctx, cfg.FCM.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to create fcm client: %w", err)
	}
	return provider, nil
}

// newStorageProvider also returns a cleanup func, never nil.
func newStorageProvider(ctx context.Context, cfg *config.StorageConfig) (storage.StorageProvider, func(), error) {
	noop := func() {}

	switch cfg.Provider {
	case "s3":
		provider, err := storage.NewAWSS3Storage(ctx, &storage.S3Config{
			Region:    cfg.AWS.Region,
			Bucket:    cfg.AWS.Bucket,
			CDNDomain: cfg.AWS.CDNDomain,
			Endpoint:  cfg.AWS.Endpoint,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create s3 client: %w", err)
		}
		return provider, noop, nil

	case "gcs":
		provider, err := storage.NewGCPStorage(ctx, &storage.GCSConfig{
			Bucket:          cfg.GCP.Bucket,
			CredentialsFile: cfg.GCP.CredentialsFile,
			CDNDomain:       cfg.GCP.CDNDomain,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create gcs client: %w", err)
		}
		return provider, func() { provider.Close() }, nil

	case "local":
		provider, err := storage.NewLocalStorage(cfg.Local.BasePath, cfg.Local.BaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to prepare archive directory: %w", err)
		}
		return provider, noop, nil

	default:
		return nil, noop, nil
	}
}

package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseRelay writes to Firebase Realtime Database, the store the driver
// and officer apps subscribe to.
type FirebaseRelay struct {
	client *db.Client
}

type FirebaseConfig struct {
	DatabaseURL     string
	CredentialsFile string
	ProjectID       string
}

func NewFirebaseRelay(ctx context.Context, config *FirebaseConfig) (*FirebaseRelay, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: config.DatabaseURL,
		ProjectID:   config.ProjectID,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get realtime database client: %w", err)
	}

	return &FirebaseRelay{client: client}, nil
}

func (f *FirebaseRelay) Name() string {
	return "firebase"
}

func (f *FirebaseRelay) Publish(ctx context.Context, path string, value interface{}) error {
	if err := f.client.NewRef(path).Set(ctx, value); err != nil {
		return fmt.Errorf("firebase set %s: %w", path, err)
	}
	return nil
}

func (f *FirebaseRelay) Get(ctx context.Context, path string, dest interface{}) error {
	var raw json.RawMessage
	if err := f.client.NewRef(path).Get(ctx, &raw); err != nil {
		return fmt.Errorf("firebase get %s: %w", path, err)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

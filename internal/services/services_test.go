package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/database"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/push"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/sms"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewSQLite(context.Background(), &database.SQLiteConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func assertCode(t *testing.T, err error, kind models.ErrorKind, code string) {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *models.AppError, got %v", err)
	}
	if appErr.Kind != kind || appErr.Code != code {
		t.Fatalf("got %s/%s (%s), want %s/%s", appErr.Kind, appErr.Code, appErr.Message, kind, code)
	}
}

// memoryCacheStore is a CacheStore backed by a map of JSON values.
type memoryCacheStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	getErr  error
	deletes []string
	// afterSet runs once, after the next Set has stored its value.
	afterSet func()
}

var errMemoryMiss = errors.New("memory cache miss")

func newMemoryCacheStore() *memoryCacheStore {
	return &memoryCacheStore{values: make(map[string][]byte)}
}

func (m *memoryCacheStore) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	data, ok := m.values[key]
	if !ok {
		return errMemoryMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCacheStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = data
	hook := m.afterSet
	m.afterSet = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

func (m *memoryCacheStore) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
		m.deletes = append(m.deletes, key)
	}
	return nil
}

func (m *memoryCacheStore) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.values[key]
	return ok
}

func isMemoryMiss(err error) bool {
	return errors.Is(err, errMemoryMiss)
}

type fakeSMSProvider struct {
	mu       sync.Mutex
	requests []*sms.SMSRequest
	err      error
}

func (f *fakeSMSProvider) Name() string { return "fake-sms" }

func (f *fakeSMSProvider) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	if f.err != nil {
		return nil, f.err
	}
	return &sms.SMSResponse{MessageID: "SM1", Status: "queued"}, nil
}

type fakePushProvider struct {
	mu       sync.Mutex
	requests []*push.NotificationRequest
}

func (f *fakePushProvider) Name() string { return "fake-push" }

func (f *fakePushProvider) SendNotification(ctx context.Context, request *push.NotificationRequest) (*push.NotificationResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	return &push.NotificationResponse{MessageID: "projects/test/messages/1", Success: true}, nil
}

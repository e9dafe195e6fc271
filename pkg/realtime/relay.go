package realtime

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when nothing was published at the path.
var ErrNotFound = errors.New("realtime: no value at path")

// Relay is a key-addressed publish/subscribe store for live positions. Paths
// are slash separated, e.g. ambulances/AMB001.
type Relay interface {
	Name() string
	Publish(ctx context.Context, path string, value interface{}) error
	Get(ctx context.Context, path string, dest interface{}) error
}

const (
	ambulancePrefix = "ambulances/"
	tripPrefix      = "trips/"
)

// AmbulancePath is where the latest location sample for an ambulance lives.
func AmbulancePath(ambulanceID string) string {
	return ambulancePrefix + ambulanceID
}

// TripPath is where the active trip snapshot for an ambulance lives.
func TripPath(ambulanceID string) string {
	return tripPrefix + ambulanceID
}

// splitPath returns the key kind ("ambulances" or "trips") and ambulance id.
func splitPath(path string) (kind, ambulanceID string, ok bool) {
	kind, ambulanceID, ok = strings.Cut(strings.Trim(path, "/"), "/")
	if !ok || ambulanceID == "" || strings.Contains(ambulanceID, "/") {
		return "", "", false
	}
	return kind, ambulanceID, true
}

package realtime

import (
	"context"
	"fmt"

	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"
)

// HubRelay pushes published values to dashboards connected over websocket.
// It is write-only: Get always reports ErrNotFound.
type HubRelay struct {
	hub *websocket.Hub
}

func NewHubRelay(hub *websocket.Hub) *HubRelay {
	return &HubRelay{hub: hub}
}

func (h *HubRelay) Name() string {
	return "websocket"
}

func (h *HubRelay) Publish(ctx context.Context, path string, value interface{}) error {
	kind, ambulanceID, ok := splitPath(path)
	if !ok {
		return fmt.Errorf("websocket relay: unroutable path %q", path)
	}

	return h.hub.Publish(ambulanceID, messageTypeFor(kind), value)
}

func (h *HubRelay) Get(ctx context.Context, path string, dest interface{}) error {
	return ErrNotFound
}

func messageTypeFor(kind string) string {
	if kind+"/" == tripPrefix {
		return websocket.MessageTrip
	}
	return websocket.MessageLocation
}

package realtime

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/anuj66688/ambulance-live-tracking-system/pkg/cache"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"
)

// BridgeRedisToHub forwards every write announced by a RedisRelay (from any
// instance) to the local websocket hub. It blocks until ctx is done.
func BridgeRedisToHub(ctx context.Context, redisCache *cache.RedisCache, keyPrefix string, hub *websocket.Hub, log *logger.Logger) {
	pubsub := redisCache.PSubscribe(ctx, keyPrefix+"*")
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			kind, ambulanceID, routable := splitPath(strings.TrimPrefix(msg.Channel, keyPrefix))
			if !routable || !json.Valid([]byte(msg.Payload)) {
				log.WithField("channel", msg.Channel).Warn("dropping unroutable relay message")
				continue
			}
			if err := hub.Publish(ambulanceID, messageTypeFor(kind), json.RawMessage(msg.Payload)); err != nil {
				log.WithAmbulanceID(ambulanceID).WithError(err).Warn("failed to forward relay message")
			}
		}
	}
}

package websocket

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Config struct {
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins lists accepted Origin headers; empty or "*" accepts any.
	AllowedOrigins []string
}

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, config *Config) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     originChecker(config.AllowedOrigins),
		},
	}
}

// HandleLive upgrades GET /api/live/:ambulanceId/ws and streams every update
// published for that ambulance.
func (h *Handler) HandleLive(c *gin.Context) {
	ambulanceID := strings.TrimSpace(c.Param("ambulanceId"))
	if ambulanceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ambulance ID is required", "code": "MISSING_AMBULANCE_ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.hub.log.WithAmbulanceID(ambulanceID).WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, ambulanceID)
	if !h.hub.Register(c.Request.Context(), client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(r *http.Request) bool { return true }
		}
		set[strings.TrimRight(origin, "/")] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

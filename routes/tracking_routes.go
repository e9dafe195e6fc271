package routes

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupTrackingRoutes sets up routing, location and live view routes. The
// websocket route is skipped when liveHandler is nil.
func SetupTrackingRoutes(
	r *gin.RouterGroup,
	routingHandler *handlers.RoutingHandler,
	locationHandler *handlers.LocationHandler,
	liveHandler *websocket.Handler,
) {
	r.POST("/getRoutes", routingHandler.GetRoutes)
	r.POST("/startTrip", routingHandler.StartTrip)
	r.POST("/updateLocation", locationHandler.UpdateLocation)

	live := r.Group("/live")
	{
		live.GET("/:ambulanceId", locationHandler.GetLiveStatus)
		if liveHandler != nil {
			live.GET("/:ambulanceId/ws", liveHandler.HandleLive)
		}
	}
}

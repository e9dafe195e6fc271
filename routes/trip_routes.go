package routes

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupTripRoutes sets up the trip ledger and analytics routes. Update and
// delete address the trip through ?tripId= on the collection path.
func SetupTripRoutes(r *gin.RouterGroup, tripHandler *handlers.TripHandler, analyticsHandler *handlers.AnalyticsHandler) {
	trips := r.Group("/trips")
	{
		trips.POST("", tripHandler.StartTrip)
		trips.GET("", tripHandler.ListTrips)
		trips.PUT("", tripHandler.UpdateTripByQuery)
		trips.DELETE("", tripHandler.DeleteTripByQuery)

		trips.GET("/analytics", analyticsHandler.GetTripAnalytics)

		trips.GET("/:tripId", tripHandler.GetTrip)
		trips.PUT("/:tripId", tripHandler.UpdateTrip)
	}
}

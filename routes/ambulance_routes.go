package routes

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAmbulanceRoutes sets up the ambulance registry routes
func SetupAmbulanceRoutes(r *gin.RouterGroup, ambulanceHandler *handlers.AmbulanceHandler) {
	ambulances := r.Group("/ambulances")
	{
		ambulances.POST("", ambulanceHandler.CreateAmbulance)
		ambulances.GET("", ambulanceHandler.ListAmbulances)
		ambulances.GET("/:ambulanceId", ambulanceHandler.GetAmbulance)
		ambulances.PUT("/:ambulanceId", ambulanceHandler.UpdateAmbulance)
		ambulances.DELETE("/:ambulanceId", ambulanceHandler.DeleteAmbulance)
	}
}

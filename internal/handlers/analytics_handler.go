package handlers

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetTripAnalytics reads ambulanceId, start_date and end_date from the query.
func (h *AnalyticsHandler) GetTripAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.GetTripAnalytics(c.Request.Context(), models.TripAnalyticsFilter{
		AmbulanceID: c.Query("ambulanceId"),
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, analytics)
}

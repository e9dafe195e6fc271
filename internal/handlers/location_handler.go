package handlers

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService services.LocationService
}

func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var request validators.LocationUpdateRequest
	if !bindJSON(c, &request) {
		return
	}

	ack, err := h.locationService.UpdateLocation(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, ack)
}

// GetLiveStatus is the officer view: last sample, active snapshot and ETA.
func (h *LocationHandler) GetLiveStatus(c *gin.Context) {
	status, err := h.locationService.GetLiveStatus(c.Request.Context(), c.Param("ambulanceId"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, status)
}

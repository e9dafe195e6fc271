package handlers

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"

	"github.com/gin-gonic/gin"
)

type RoutingHandler struct {
	routingService services.RoutingService
}

func NewRoutingHandler(routingService services.RoutingService) *RoutingHandler {
	return &RoutingHandler{
		routingService: routingService,
	}
}

// GetRoutes previews the primary route and its alternatives
func (h *RoutingHandler) GetRoutes(c *gin.Context) {
	var request validators.RoutesRequest
	if !bindJSON(c, &request) {
		return
	}

	result, err := h.routingService.ComputeRoutes(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// StartTrip assembles a dispatch snapshot. Nothing is written to the ledger.
func (h *RoutingHandler) StartTrip(c *gin.Context) {
	var request validators.StartTripRequest
	if !bindJSON(c, &request) {
		return
	}

	result, err := h.routingService.StartTrip(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

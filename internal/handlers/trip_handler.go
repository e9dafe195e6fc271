package handlers

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"

	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	tripService services.TripService
}

func NewTripHandler(tripService services.TripService) *TripHandler {
	return &TripHandler{
		tripService: tripService,
	}
}

// StartTrip records a new trip in the ledger
func (h *TripHandler) StartTrip(c *gin.Context) {
	var request validators.TripCreateRequest
	if !bindJSON(c, &request) {
		return
	}

	trip, err := h.tripService.StartTrip(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, trip)
}

// ListTrips filters by ambulanceId, status and a startDate/endDate window
func (h *TripHandler) ListTrips(c *gin.Context) {
	query := services.TripQuery{
		AmbulanceID: c.Query("ambulanceId"),
		Status:      c.Query("status"),
		StartDate:   c.Query("startDate"),
		EndDate:     c.Query("endDate"),
	}

	trips, err := h.tripService.ListTrips(c.Request.Context(), query, utils.GetPaginationParams(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if trips == nil {
		trips = []*models.Trip{}
	}

	utils.SuccessResponse(c, trips)
}

func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.tripService.GetTrip(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, trip)
}

// UpdateTrip serves PUT /trips/:tripId.
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	h.updateTrip(c, c.Param("tripId"))
}

// UpdateTripByQuery serves PUT /trips?tripId=.
func (h *TripHandler) UpdateTripByQuery(c *gin.Context) {
	h.updateTrip(c, c.Query("tripId"))
}

func (h *TripHandler) updateTrip(c *gin.Context, tripID string) {
	var request validators.TripUpdateRequest
	if !bindJSON(c, &request) {
		return
	}

	trip, err := h.tripService.UpdateTrip(c.Request.Context(), tripID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, trip)
}

// DeleteTripByQuery serves DELETE /trips?tripId= and echoes the removed trip.
func (h *TripHandler) DeleteTripByQuery(c *gin.Context) {
	trip, err := h.tripService.DeleteTrip(c.Request.Context(), c.Query("tripId"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": utils.MsgTripDeleted,
		"trip":    trip,
	})
}

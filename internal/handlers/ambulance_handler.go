package handlers

import (
	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/services"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"

	"github.com/gin-gonic/gin"
)

type AmbulanceHandler struct {
	ambulanceService services.AmbulanceService
}

func NewAmbulanceHandler(ambulanceService services.AmbulanceService) *AmbulanceHandler {
	return &AmbulanceHandler{
		ambulanceService: ambulanceService,
	}
}

// CreateAmbulance registers a new ambulance
func (h *AmbulanceHandler) CreateAmbulance(c *gin.Context) {
	var request validators.AmbulanceCreateRequest
	if !bindJSON(c, &request) {
		return
	}

	ambulance, err := h.ambulanceService.CreateAmbulance(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, ambulance)
}

// ListAmbulances returns a page of ambulances, optionally filtered by status
func (h *AmbulanceHandler) ListAmbulances(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	ambulances, err := h.ambulanceService.ListAmbulances(c.Request.Context(), c.Query("status"), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}
	if ambulances == nil {
		ambulances = []*models.Ambulance{}
	}

	utils.SuccessResponse(c, ambulances)
}

func (h *AmbulanceHandler) GetAmbulance(c *gin.Context) {
	ambulance, err := h.ambulanceService.GetAmbulance(c.Request.Context(), c.Param("ambulanceId"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, ambulance)
}

// UpdateAmbulance applies a partial update
func (h *AmbulanceHandler) UpdateAmbulance(c *gin.Context) {
	var request validators.AmbulanceUpdateRequest
	if !bindJSON(c, &request) {
		return
	}

	ambulance, err := h.ambulanceService.UpdateAmbulance(c.Request.Context(), c.Param("ambulanceId"), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, ambulance)
}

func (h *AmbulanceHandler) DeleteAmbulance(c *gin.Context) {
	ambulance, err := h.ambulanceService.DeleteAmbulance(c.Request.Context(), c.Param("ambulanceId"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     utils.MsgAmbulanceDeleted,
		"ambulanceId": ambulance.AmbulanceID,
	})
}

// Package handlers translates HTTP requests into service calls and service
// results into JSON responses.
package handlers

import (
	"net/http"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dest, writing a 400 and returning false when
// it is not valid JSON for that shape.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, models.CodeInvalidBody, utils.MsgInvalidBody, err.Error())
		return false
	}
	return true
}

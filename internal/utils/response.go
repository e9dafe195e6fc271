package utils

import (
	"net/http"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{Error: message, Code: code})
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, ErrorBody{Error: message, Code: code, Details: details})
}

// AppErrorResponse writes err using the status mapped from its kind.
// Errors that are not *models.AppError are reported as internal.
func AppErrorResponse(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	_ = c.Error(appErr)
	ErrorResponseWithDetails(c, StatusCodeFor(appErr.Kind), appErr.Code, appErr.Message, appErr.Details)
}

func StatusCodeFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation, models.KindDuplicate, models.KindProvider:
		return http.StatusBadRequest
	case models.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type PaginationParams struct {
	Limit  int `json:"limit" form:"limit"`
	Offset int `json:"offset" form:"offset"`
}

// GetPaginationParams reads limit and offset from the query string.
func GetPaginationParams(c *gin.Context) PaginationParams {
	return NewPaginationParams(c.Query("limit"), c.Query("offset"))
}

// NewPaginationParams clamps limit to [1, MaxPageLimit], falling back to
// DefaultPageLimit for missing or non-positive values. Offset never goes below 0.
func NewPaginationParams(rawLimit, rawOffset string) PaginationParams {
	limit, err := strconv.Atoi(strings.TrimSpace(rawLimit))
	if err != nil || limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	offset, err := strconv.Atoi(strings.TrimSpace(rawOffset))
	if err != nil || offset < 0 {
		offset = 0
	}

	return PaginationParams{Limit: limit, Offset: offset}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck checks one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  []HealthCheck
}

func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
	}
}

// Health reports 503 when any dependency check fails.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			results[check.Name] = err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		results[check.Name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": utils.AppName,
		"version": h.version,
		"checks":  results,
		"time":    utils.NowISO(),
	})
}

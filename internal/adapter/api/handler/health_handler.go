package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthHandler struct {
	service  string
	version  string
	features map[string]string
}

// NewHealthHandler reports which backend serves each feature, e.g. registry=memory.
func NewHealthHandler(service, version string, features map[string]string) *HealthHandler {
	return &HealthHandler{
		service:  service,
		version:  version,
		features: features,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   h.service,
		"version":   h.version,
		"features":  h.features,
	})
}

// Package v1 provides the HTTP handlers for the query pipeline API.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tsbuk33/Aqlhr-ai-hr-platform-sub003/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/queries", h.RunQuery)
	e.GET("/v1/analyses", h.ListAnalyses)
	e.GET("/v1/domains", h.ListDomains)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires the pipeline endpoints onto the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/health", h.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/flights/search", h.Search)
	v1.POST("/flights/shift", h.Shift)
	v1.PUT("/flights/filters", h.SetFilters)
	v1.PUT("/flights/sort", h.SetSort)
	v1.GET("/flights/results", h.Results)
	v1.GET("/settings/airports", h.Airports)
}

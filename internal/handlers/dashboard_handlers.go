package handlers

import (
	"net/http"

	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardHandlers struct {
	dashboard services.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandlers(dashboard services.DashboardService, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{dashboard: dashboard, logger: logger}
}

// GetStats handles GET /dashboard. Failed sections are flagged in the
// body; the response is still 200.
func (h *DashboardHandlers) GetStats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Dashboard", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetLowStock handles GET /dashboard/low-stock
func (h *DashboardHandlers) GetLowStock(c echo.Context) error {
	alerts, err := h.dashboard.LowStock(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, alerts)
}

func (h *DashboardHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.GetStats)
	g.GET("/dashboard/low-stock", h.GetLowStock)
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"shoepos/internal/common"
	"shoepos/internal/jobs"
	"shoepos/internal/jobs/background"
	"shoepos/internal/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JobScheduler is the part of the background scheduler exposed over HTTP
type JobScheduler interface {
	RunNow(name string) error
	GetJobStatus() []background.JobStatus
}

type JobHandlers struct {
	scheduler   JobScheduler
	stockAlerts *jobs.StockAlertService
	logger      *zap.Logger
}

func NewJobHandlers(scheduler JobScheduler, stockAlerts *jobs.StockAlertService, logger *zap.Logger) *JobHandlers {
	return &JobHandlers{scheduler: scheduler, stockAlerts: stockAlerts, logger: logger}
}

type lowStockScanResponse struct {
	Alerts    []models.StockAlert `json:"alerts"`
	ScannedAt *time.Time          `json:"scannedAt,omitempty"`
}

// ListJobs handles GET /jobs
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.scheduler.GetJobStatus())
}

// RunJob handles POST /jobs/:name/run
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.scheduler.RunNow(name); err != nil {
		if errors.Is(err, background.ErrUnknownJob) {
			return common.SendNotFoundError(c, "Job")
		}
		return respondError(c, h.logger, "Job", err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"job": name, "status": "triggered"})
}

// LastLowStockScan handles GET /jobs/low-stock-alerts/latest
func (h *JobHandlers) LastLowStockScan(c echo.Context) error {
	if h.stockAlerts == nil {
		return common.SendNotFoundError(c, "Job")
	}
	alerts, ranAt := h.stockAlerts.LastAlerts()
	resp := lowStockScanResponse{Alerts: alerts}
	if !ranAt.IsZero() {
		resp.ScannedAt = &ranAt
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *JobHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/jobs", h.ListJobs)
	g.GET("/jobs/"+background.JobLowStock+"/latest", h.LastLowStockScan)
	g.POST("/jobs/:name/run", h.RunJob)
}

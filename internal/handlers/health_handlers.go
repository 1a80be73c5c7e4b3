package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is a dependency that can report its own reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type dependency struct {
	name     string
	pinger   Pinger
	critical bool
}

// HealthHandlers reports liveness and the state of the service's dependencies
type HealthHandlers struct {
	deps    []dependency
	version string
	started time.Time
	timeout time.Duration
}

func NewHealthHandlers(version string) *HealthHandlers {
	return &HealthHandlers{
		version: version,
		started: time.Now(),
		timeout: 2 * time.Second,
	}
}

// AddCheck registers a dependency. A failing critical dependency makes the
// service not ready; any failure marks it degraded.
func (h *HealthHandlers) AddCheck(name string, pinger Pinger, critical bool) {
	h.deps = append(h.deps, dependency{name: name, pinger: pinger, critical: critical})
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string, len(h.deps)),
		Uptime:    time.Since(h.started).Truncate(time.Second).String(),
		Version:   h.version,
	}

	for name, err := range h.check(c.Request().Context()) {
		if err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck handles GET /health/ready
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	results := h.check(c.Request().Context())
	for _, dep := range h.deps {
		if dep.critical && results[dep.name] != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status":  "not_ready",
				"message": dep.name + " unavailable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

func (h *HealthHandlers) check(ctx context.Context) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make(map[string]error, len(h.deps))
	for _, dep := range h.deps {
		results[dep.name] = dep.pinger.Ping(ctx)
	}
	return results
}

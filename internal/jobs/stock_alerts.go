package jobs

import (
	"context"
	"sync"
	"time"

	"shoepos/internal/models"

	"go.uber.org/zap"
)

// LowStockSource lists the stock entries currently under the threshold
type LowStockSource interface {
	LowStock(ctx context.Context) ([]models.StockAlert, error)
}

// StockAlertService scans the catalog for low stock and keeps the result of
// the most recent scan.
type StockAlertService struct {
	source LowStockSource
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	lastRun   time.Time
	lastAlert []models.StockAlert
}

func NewStockAlertService(source LowStockSource, logger *zap.Logger) *StockAlertService {
	return &StockAlertService{
		source: source,
		logger: logger.Named("stock-alerts"),
		now:    time.Now,
	}
}

func (a *StockAlertService) CheckLowStock(ctx context.Context) ([]models.StockAlert, error) {
	alerts, err := a.source.LowStock(ctx)
	if err != nil {
		a.logger.Error("failed to check low stock", zap.Error(err))
		return nil, err
	}

	a.mu.Lock()
	a.lastRun = a.now()
	a.lastAlert = alerts
	a.mu.Unlock()

	return alerts, nil
}

func (a *StockAlertService) LogLowStockAlerts(alerts []models.StockAlert) {
	if len(alerts) == 0 {
		a.logger.Info("no low stock alerts")
		return
	}

	for _, alert := range alerts {
		fields := []zap.Field{
			zap.Int64("product_id", alert.ProductID),
			zap.String("product_name", alert.ProductName),
			zap.Int("stock", alert.Stock),
			zap.Int("threshold", alert.Threshold),
		}
		if alert.VariantID != nil {
			fields = append(fields, zap.Int64("variant_id", *alert.VariantID))
		}
		a.logger.Warn("low stock", fields...)
	}
}

// ScheduledLowStockCheck is the scheduler entry point
func (a *StockAlertService) ScheduledLowStockCheck(ctx context.Context) error {
	alerts, err := a.CheckLowStock(ctx)
	if err != nil {
		return err
	}
	a.LogLowStockAlerts(alerts)
	return nil
}

// LastAlerts returns the alerts of the latest successful scan and when it ran.
// The zero time means no scan has completed yet.
func (a *StockAlertService) LastAlerts() ([]models.StockAlert, time.Time) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	alerts := make([]models.StockAlert, len(a.lastAlert))
	copy(alerts, a.lastAlert)
	return alerts, a.lastRun
}

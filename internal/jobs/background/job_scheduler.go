package background

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"shoepos/internal/cart"
	"shoepos/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Job names
const (
	JobSessionSweep = "session-sweep"
	JobLowStock     = "low-stock-alerts"
	JobCacheWarm    = "catalog-cache-warm"
)

var ErrUnknownJob = errors.New("unknown job")

// CacheWarmer preloads the catalog cache
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// Config holds the job intervals. A zero interval disables that job.
type Config struct {
	SessionIdleTimeout time.Duration
	SessionSweepEvery  time.Duration
	LowStockEvery      time.Duration
	CacheWarmEvery     time.Duration
	JobTimeout         time.Duration
}

// JobStatus describes one registered job
type JobStatus struct {
	Name    string     `json:"name"`
	NextRun *time.Time `json:"nextRun,omitempty"`
	LastRun *time.Time `json:"lastRun,omitempty"`
}

// JobScheduler runs the POS housekeeping jobs
type JobScheduler struct {
	scheduler   gocron.Scheduler
	registry    *cart.Registry
	stockAlerts *jobs.StockAlertService
	warmer      CacheWarmer
	cfg         Config
	logger      *zap.Logger
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers every enabled job.
// stockAlerts and warmer may be nil.
func NewJobScheduler(cfg Config, registry *cart.Registry, stockAlerts *jobs.StockAlertService, warmer CacheWarmer, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = time.Minute
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		registry:    registry,
		stockAlerts: stockAlerts,
		warmer:      warmer,
		cfg:         cfg,
		logger:      logger.Named("scheduler"),
		jobs:        make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if js.registry != nil && js.cfg.SessionSweepEvery > 0 && js.cfg.SessionIdleTimeout > 0 {
		if err := js.add(JobSessionSweep, js.cfg.SessionSweepEvery, js.sweepSessions); err != nil {
			return err
		}
	}
	if js.stockAlerts != nil && js.cfg.LowStockEvery > 0 {
		if err := js.add(JobLowStock, js.cfg.LowStockEvery, js.checkLowStock); err != nil {
			return err
		}
	}
	if js.warmer != nil && js.cfg.CacheWarmEvery > 0 {
		if err := js.add(JobCacheWarm, js.cfg.CacheWarmEvery, js.warmCatalogCache); err != nil {
			return err
		}
	}
	return nil
}

func (js *JobScheduler) add(name string, interval time.Duration, task func() error) error {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", name, err)
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
	return nil
}

// sweepSessions evicts register sessions idle past the timeout
func (js *JobScheduler) sweepSessions() error {
	evicted := js.registry.SweepIdle(js.cfg.SessionIdleTimeout)
	if evicted > 0 {
		js.logger.Info("evicted idle pos sessions", zap.Int("evicted", evicted), zap.Int("remaining", js.registry.Len()))
	}
	return nil
}

func (js *JobScheduler) checkLowStock() error {
	ctx, cancel := context.WithTimeout(context.Background(), js.cfg.JobTimeout)
	defer cancel()
	return js.stockAlerts.ScheduledLowStockCheck(ctx)
}

func (js *JobScheduler) warmCatalogCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), js.cfg.JobTimeout)
	defer cancel()

	if err := js.warmer.WarmCache(ctx); err != nil {
		js.logger.Warn("catalog cache warm-up failed", zap.Error(err))
		return err
	}
	return nil
}

// RunNow triggers the named job outside its schedule
func (js *JobScheduler) RunNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return job.RunNow()
}

// GetJobStatus lists the registered jobs by name
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		status := JobStatus{Name: name}
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			status.NextRun = &next
		}
		if last, err := job.LastRun(); err == nil && !last.IsZero() {
			status.LastRun = &last
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

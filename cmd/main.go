package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"shoepos/internal/apiclient"
	"shoepos/internal/caching"
	"shoepos/internal/cart"
	"shoepos/internal/config"
	"shoepos/internal/handlers"
	"shoepos/internal/jobs"
	"shoepos/internal/jobs/background"
	"shoepos/internal/logging"
	"shoepos/internal/middleware"
	"shoepos/internal/repositories"
	"shoepos/internal/services"
	"shoepos/internal/telemetry"
	"shoepos/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}

	client := apiclient.NewClient(cfg.Backend, logger)

	health := handlers.NewHealthHandlers(version)
	health.AddCheck("backend", handlers.PingFunc(func(ctx context.Context) error {
		_, err := client.Categories.List(ctx)
		return err
	}), true)

	// Catalog cache
	var cache caching.CatalogCache = caching.NoopCache{}
	if cfg.Redis.Addr != "" {
		redisClient := caching.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		defer func() { _ = redisClient.Close() }()
		cache = caching.NewRedisCatalogCache(redisClient)
		health.AddCheck("redis", cache, false)
	} else {
		logger.Info("redis not configured, catalog cache disabled")
	}

	// Checkout journal
	checkoutOpts := []services.CheckoutOption{services.WithCatalogCache(cache)}
	if cfg.Database.URL != "" {
		pool, err := database.NewPool(ctx, cfg.Database.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to journal database: %w", err)
		}
		defer pool.Close()

		if err := database.EnsureJournalSchema(ctx, pool); err != nil {
			return err
		}
		checkoutOpts = append(checkoutOpts, services.WithJournal(repositories.NewCheckoutJournalRepo(pool)))
		health.AddCheck("journal", pool, false)
	} else {
		logger.Info("database not configured, checkout journal disabled")
	}

	// Receipt archive
	var storage services.ObjectStorage
	if cfg.Minio.Endpoint != "" {
		storage, err = services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			return fmt.Errorf("failed to create object storage client: %w", err)
		}
		if err := storage.EnsureBucketExists(ctx, cfg.Minio.Bucket); err != nil {
			logger.Warn("receipt bucket check failed", zap.String("bucket", cfg.Minio.Bucket), zap.Error(err))
		}
		bucket := cfg.Minio.Bucket
		health.AddCheck("storage", handlers.PingFunc(func(ctx context.Context) error {
			return storage.EnsureBucketExists(ctx, bucket)
		}), false)
	} else {
		logger.Info("minio not configured, receipt archiving disabled")
	}

	// Services
	catalogSvc := services.NewCatalogService(client.Categories, client.Products, client.Variants, cache, cfg.Redis.CatalogTTL.Duration, logger)
	customerSvc := services.NewCustomerService(client.Customers, logger)
	employeeSvc := services.NewEmployeeService(client.Employees)
	orderSvc := services.NewOrderService(client.Orders, client.OrderDetails)
	posSvc := services.NewPOSService(catalogSvc, logger)
	checkoutSvc := services.NewCheckoutService(client.Orders, client.OrderDetails, cfg.POS.DefaultEmployeeID, logger, checkoutOpts...)
	receiptSvc := services.NewReceiptService(client.Orders, client.Customers, client.Employees, storage, cfg.Minio.Bucket, services.StoreInfo{
		Name:    cfg.POS.StoreName,
		Address: cfg.POS.StoreAddress,
		Phone:   cfg.POS.StorePhone,
	}, logger)
	dashboardSvc := services.NewDashboardService(catalogSvc, client.Orders, client.Customers, client.Employees, cfg.POS.LowStockThreshold, logger)

	// Background jobs
	registry := cart.NewRegistry()
	stockAlerts := jobs.NewStockAlertService(dashboardSvc, logger)

	var warmer background.CacheWarmer
	if cfg.Redis.Addr != "" {
		warmer = catalogSvc
	}
	scheduler, err := background.NewJobScheduler(background.Config{
		SessionIdleTimeout: cfg.POS.SessionIdleTimeout.Duration,
		SessionSweepEvery:  cfg.Jobs.SessionSweepInterval.Duration,
		LowStockEvery:      cfg.Jobs.LowStockScanInterval.Duration,
		CacheWarmEvery:     cfg.Jobs.CacheWarmInterval.Duration,
	}, registry, stockAlerts, warmer, logger)
	if err != nil {
		return err
	}
	scheduler.Start()

	e := newServer(logger)

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", health.HealthCheck)
	e.GET("/health/ready", health.ReadinessCheck)

	v1 := versionMiddleware.VersionRoute(e, "v1")
	if cfg.Auth.JWTSecret != "" {
		v1.Use(middleware.OperatorJWT(cfg.Auth.JWTSecret))
	} else {
		logger.Warn("JWT_SECRET not set, operator authentication disabled")
	}

	handlers.NewDashboardHandlers(dashboardSvc, logger).RegisterRoutes(v1)
	handlers.NewCatalogHandlers(catalogSvc, logger).RegisterRoutes(v1)
	handlers.NewCustomerHandlers(customerSvc, logger).RegisterRoutes(v1)
	handlers.NewEmployeeHandlers(employeeSvc, logger).RegisterRoutes(v1)
	handlers.NewOrderHandlers(orderSvc, logger).RegisterRoutes(v1)
	handlers.NewJobHandlers(scheduler, stockAlerts, logger).RegisterRoutes(v1)

	pos := v1.Group("/pos", middleware.POSSession(registry, logger))
	handlers.NewPOSHandlers(posSvc, customerSvc, checkoutSvc, logger).RegisterRoutes(pos)
	handlers.NewReceiptHandlers(receiptSvc, logger).RegisterRoutes(pos)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("shoepos server starting", zap.String("version", version), zap.String("addr", addr), zap.String("backend", cfg.Backend.BaseURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if serr := e.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("http server shutdown failed", zap.Error(serr))
	}
	if serr := scheduler.Stop(); serr != nil {
		logger.Warn("scheduler shutdown failed", zap.Error(serr))
	}
	if serr := shutdownTracing(shutdownCtx); serr != nil {
		logger.Warn("tracer shutdown failed", zap.Error(serr))
	}
	return err
}

func newServer(logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.SessionHeader},
		ExposeHeaders: []string{middleware.SessionHeader},
	}))
	e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "shoepos")
	}))
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	}))
	return e
}

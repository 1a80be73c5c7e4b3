package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config represents the complete service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Backend  BackendConfig  `toml:"backend"`
	POS      POSConfig      `toml:"pos"`
	Redis    RedisConfig    `toml:"redis"`
	Database DatabaseConfig `toml:"database"`
	Minio    MinioConfig    `toml:"minio"`
	Auth     AuthConfig     `toml:"auth"`
	Jobs     JobsConfig     `toml:"jobs"`
	Tracing  TracingConfig  `toml:"tracing"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// BackendConfig points at the retail REST API that owns all records
type BackendConfig struct {
	BaseURL              string   `toml:"base_url"`
	Timeout              Duration `toml:"timeout"`
	APIToken             string   `toml:"api_token"`
	RetryMaxTries        uint     `toml:"retry_max_tries"`
	RetryInitialInterval Duration `toml:"retry_initial_interval"`
}

type POSConfig struct {
	DefaultEmployeeID  int64    `toml:"default_employee_id"`
	SessionIdleTimeout Duration `toml:"session_idle_timeout"`
	LowStockThreshold  int      `toml:"low_stock_threshold"`
	StoreName          string   `toml:"store_name"`
	StoreAddress       string   `toml:"store_address"`
	StorePhone         string   `toml:"store_phone"`
}

type RedisConfig struct {
	Addr       string   `toml:"addr"`
	Password   string   `toml:"password"`
	DB         int      `toml:"db"`
	CatalogTTL Duration `toml:"catalog_ttl"`
}

// DatabaseConfig configures the checkout journal. An empty URL disables it.
type DatabaseConfig struct {
	URL string `toml:"url"`
}

// MinioConfig configures receipt archiving. An empty endpoint disables it.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
	Bucket    string `toml:"bucket"`
}

// AuthConfig enables operator JWT auth when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// JobsConfig sets the background job intervals. Zero disables a job.
type JobsConfig struct {
	SessionSweepInterval Duration `toml:"session_sweep_interval"`
	LowStockScanInterval Duration `toml:"low_stock_scan_interval"`
	CacheWarmInterval    Duration `toml:"cache_warm_interval"`
}

type TracingConfig struct {
	Exporter     string `toml:"exporter"` // none, stdout, otlp
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Duration is a time.Duration that decodes from strings such as "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8081},
		Backend: BackendConfig{
			BaseURL:              "http://localhost:8080/api/v1",
			Timeout:              Duration{10 * time.Second},
			RetryMaxTries:        3,
			RetryInitialInterval: Duration{200 * time.Millisecond},
		},
		POS: POSConfig{
			DefaultEmployeeID:  1,
			SessionIdleTimeout: Duration{8 * time.Hour},
			LowStockThreshold:  10,
			StoreName:          "Shoe Store",
			StoreAddress:       "123 Main Street, City, Country",
			StorePhone:         "(123) 456-7890",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			CatalogTTL: Duration{5 * time.Minute},
		},
		Minio: MinioConfig{Bucket: "pos-receipts"},
		Jobs: JobsConfig{
			SessionSweepInterval: Duration{5 * time.Minute},
			LowStockScanInterval: Duration{30 * time.Minute},
			CacheWarmInterval:    Duration{4 * time.Minute},
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			ServiceName: "shoepos",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, an optional .env file, the
// TOML file named by CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays a TOML file onto cfg
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error

	setInt(&c.Server.Port, "PORT", &errs)

	setString(&c.Backend.BaseURL, "BACKEND_URL")
	setDuration(&c.Backend.Timeout, "BACKEND_TIMEOUT", &errs)
	setString(&c.Backend.APIToken, "BACKEND_API_TOKEN")
	if v := os.Getenv("BACKEND_RETRY_MAX_TRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("BACKEND_RETRY_MAX_TRIES: %w", err))
		} else {
			c.Backend.RetryMaxTries = uint(n)
		}
	}
	setDuration(&c.Backend.RetryInitialInterval, "BACKEND_RETRY_INITIAL_INTERVAL", &errs)

	if v := os.Getenv("POS_DEFAULT_EMPLOYEE_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("POS_DEFAULT_EMPLOYEE_ID: %w", err))
		} else {
			c.POS.DefaultEmployeeID = id
		}
	}
	setDuration(&c.POS.SessionIdleTimeout, "POS_SESSION_IDLE_TIMEOUT", &errs)
	setInt(&c.POS.LowStockThreshold, "POS_LOW_STOCK_THRESHOLD", &errs)
	setString(&c.POS.StoreName, "POS_STORE_NAME")
	setString(&c.POS.StoreAddress, "POS_STORE_ADDRESS")
	setString(&c.POS.StorePhone, "POS_STORE_PHONE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setInt(&c.Redis.DB, "REDIS_DB", &errs)
	setDuration(&c.Redis.CatalogTTL, "REDIS_CATALOG_TTL", &errs)

	setString(&c.Database.URL, "DATABASE_URL")

	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.Minio.UseSSL = v == "true"
	}

	setString(&c.Auth.JWTSecret, "JWT_SECRET")

	setDuration(&c.Jobs.SessionSweepInterval, "JOBS_SESSION_SWEEP_INTERVAL", &errs)
	setDuration(&c.Jobs.LowStockScanInterval, "JOBS_LOW_STOCK_SCAN_INTERVAL", &errs)
	setDuration(&c.Jobs.CacheWarmInterval, "JOBS_CACHE_WARM_INTERVAL", &errs)

	setString(&c.Tracing.Exporter, "TRACING_EXPORTER")
	setString(&c.Tracing.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&c.Tracing.ServiceName, "OTEL_SERVICE_NAME")

	setString(&c.Logging.Level, "LOG_LEVEL")
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		c.Logging.Development = v == "true"
	}

	return errors.Join(errs...)
}

// Validate checks values that would otherwise fail at first use
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return errors.New("backend base URL is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.POS.DefaultEmployeeID <= 0 {
		return errors.New("default employee ID must be positive")
	}
	if c.Backend.Timeout.Duration <= 0 {
		return errors.New("backend timeout must be positive")
	}
	switch c.Tracing.Exporter {
	case "", "none", "stdout", "otlp":
	default:
		return fmt.Errorf("unknown tracing exporter %q", c.Tracing.Exporter)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func setDuration(dst *Duration, key string, errs *[]error) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
	}
}

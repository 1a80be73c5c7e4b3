package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"shoepos/internal/config"
)

// Client talks JSON to the retail backend. Each resource is exposed through
// its own typed API.
type Client struct {
	baseURL       string
	apiToken      string
	httpClient    *http.Client
	logger        *zap.Logger
	retryMaxTries uint
	retryInitial  time.Duration

	Categories   CategoryAPI
	Products     ProductAPI
	Variants     VariantAPI
	Customers    CustomerAPI
	Employees    EmployeeAPI
	Orders       OrderAPI
	OrderDetails OrderDetailAPI
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a backend client from the backend configuration
func NewClient(cfg config.BackendConfig, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:      cfg.APIToken,
		logger:        logger.Named("apiclient"),
		retryMaxTries: cfg.RetryMaxTries,
		retryInitial:  cfg.RetryInitialInterval.Duration,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout.Duration,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	if c.retryMaxTries == 0 {
		c.retryMaxTries = 1
	}
	for _, opt := range opts {
		opt(c)
	}

	c.initResources()

	return c
}

// do performs one logical call. GETs are retried on transport and server
// failures; mutations are sent exactly once.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = data
	}

	var err error
	if method == http.MethodGet {
		err = c.retry(ctx, func() error {
			return c.send(ctx, method, path, body, out)
		})
	} else {
		err = c.send(ctx, method, path, body, out)
	}

	if apiErr, ok := AsAPIError(err); ok {
		c.logFailure(apiErr)
	}
	return err
}

func (c *Client) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	if c.retryInitial > 0 {
		b.InitialInterval = c.retryInitial
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err == nil {
			return struct{}{}, nil
		}
		if apiErr, ok := AsAPIError(err); ok && apiErr.Temporary() {
			c.logger.Debug("retrying backend read",
				zap.String("path", apiErr.Path),
				zap.Int("status", apiErr.StatusCode))
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.retryMaxTries))
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{
			Kind:    KindTransport,
			Message: "No response from server",
			Method:  method,
			Path:    path,
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       KindTransport,
			Message:    "failed to read response body",
			Method:     method,
			Path:       path,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(method, path, resp.StatusCode, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) logFailure(e *APIError) {
	fields := []zap.Field{
		zap.String("method", e.Method),
		zap.String("path", e.Path),
		zap.Int("status", e.StatusCode),
		zap.String("message", e.Message),
	}

	switch {
	case e.StatusCode == 0:
		c.logger.Error("no response from backend", append(fields, zap.Error(e.Err))...)
	case e.StatusCode == http.StatusUnauthorized:
		c.logger.Warn("backend rejected credentials", fields...)
	case e.StatusCode == http.StatusForbidden:
		c.logger.Warn("backend denied access", fields...)
	case e.StatusCode == http.StatusNotFound:
		c.logger.Info("backend resource not found", fields...)
	case e.StatusCode >= 500:
		c.logger.Error("backend server error", fields...)
	default:
		c.logger.Warn("backend request failed", fields...)
	}
}

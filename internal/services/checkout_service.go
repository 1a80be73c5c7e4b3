package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shoepos/internal/apiclient"
	"shoepos/internal/caching"
	"shoepos/internal/cart"
	"shoepos/internal/common"
	"shoepos/internal/models"
	"shoepos/internal/repositories"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoCustomerSelected = errors.New("please select a customer")
	ErrCheckoutInProgress = cart.ErrCheckoutInProgress
	ErrJournalDisabled    = errors.New("checkout journal is not configured")
	ErrMissingOrderID     = errors.New("backend returned an order without an id")
)

// Checkout failure stages.
const (
	StageOrder        = "order"
	StageOrderDetails = "order_details"
)

// CheckoutError reports a checkout that reached the backend and failed.
// OrderID is set once the order header exists. Compensated tells whether
// the partial order was removed again.
type CheckoutError struct {
	Stage       string
	OrderID     int64
	Compensated bool
	Err         error
}

func (e *CheckoutError) Error() string {
	if e.Stage == StageOrder {
		return fmt.Sprintf("failed to create order: %v", e.Err)
	}
	if e.Compensated {
		return fmt.Sprintf("failed to create order details for order %d, order removed: %v", e.OrderID, e.Err)
	}
	return fmt.Sprintf("failed to create order details for order %d, order left incomplete: %v", e.OrderID, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// CheckoutService turns a session's cart into a committed backend order
type CheckoutService interface {
	Checkout(ctx context.Context, session *cart.Session, req *models.CheckoutRequest) (*models.CheckoutResult, error)
	// RecentCheckouts lists journal entries newest first, optionally
	// restricted to one status
	RecentCheckouts(ctx context.Context, status string, limit int) ([]models.CheckoutJournalEntry, error)
}

type CheckoutOption func(*checkoutService)

// WithClock overrides the time source used for order dates and journal entries
func WithClock(now func() time.Time) CheckoutOption {
	return func(s *checkoutService) {
		s.now = now
	}
}

// WithJournal records every checkout attempt
func WithJournal(journal repositories.CheckoutJournalRepository) CheckoutOption {
	return func(s *checkoutService) {
		s.journal = journal
	}
}

// WithCatalogCache invalidates cached stock after a sale
func WithCatalogCache(cache caching.CatalogCache) CheckoutOption {
	return func(s *checkoutService) {
		s.cache = cache
	}
}

type checkoutService struct {
	orders            apiclient.OrderAPI
	details           apiclient.OrderDetailAPI
	journal           repositories.CheckoutJournalRepository
	cache             caching.CatalogCache
	defaultEmployeeID int64
	now               func() time.Time
	tracer            trace.Tracer
	logger            *zap.Logger
}

func NewCheckoutService(orders apiclient.OrderAPI, details apiclient.OrderDetailAPI, defaultEmployeeID int64, logger *zap.Logger, opts ...CheckoutOption) CheckoutService {
	s := &checkoutService{
		orders:            orders,
		details:           details,
		defaultEmployeeID: defaultEmployeeID,
		now:               time.Now,
		tracer:            otel.Tracer("shoepos/checkout"),
		logger:            logger.Named("checkout"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *checkoutService) Checkout(ctx context.Context, session *cart.Session, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "checkout", trace.WithAttributes(
		attribute.String("pos.session_id", session.ID.String()),
	))
	defer span.End()

	if req != nil {
		if err := common.ValidateStruct(req); err != nil {
			return nil, err
		}
	}

	customer := session.Customer()
	if customer == nil {
		return nil, ErrNoCustomerSelected
	}
	if session.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := session.TryBeginCheckout(); err != nil {
		return nil, err
	}
	defer session.EndCheckout()

	// cart edits are refused from here on, so this snapshot is what gets cleared
	lines := session.Cart.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	employeeID := s.resolveEmployee(ctx, req)
	total := cart.SumLines(lines)
	totalItems := 0
	for _, l := range lines {
		totalItems += l.Quantity
	}

	span.SetAttributes(
		attribute.Int64("pos.customer_id", customer.CustomerID),
		attribute.Int64("pos.employee_id", employeeID),
		attribute.Int("pos.line_count", len(lines)),
		attribute.Float64("pos.total_amount", total),
	)

	entry := &models.CheckoutJournalEntry{
		SessionID:   session.ID,
		CustomerID:  customer.CustomerID,
		EmployeeID:  employeeID,
		TotalAmount: total,
		LineCount:   len(lines),
	}

	order, err := s.orders.Create(ctx, &models.CreateOrderRequest{
		OrderDate:   s.now().UTC().Format(models.OrderDateLayout),
		CustomerID:  customer.CustomerID,
		EmployeeID:  employeeID,
		TotalAmount: total,
	})
	if err == nil && (order == nil || order.OrderID == 0) {
		err = ErrMissingOrderID
	}
	if err != nil {
		cerr := &CheckoutError{Stage: StageOrder, Err: err}
		s.fail(ctx, span, entry, models.CheckoutStatusOrderFailed, cerr)
		return nil, cerr
	}
	entry.OrderID = &order.OrderID
	span.SetAttributes(attribute.Int64("pos.order_id", order.OrderID))

	created, err := s.createDetails(ctx, order.OrderID, lines)
	if err != nil {
		compensated := s.compensate(ctx, order.OrderID, created)
		cerr := &CheckoutError{
			Stage:       StageOrderDetails,
			OrderID:     order.OrderID,
			Compensated: compensated,
			Err:         err,
		}
		status := models.CheckoutStatusCompensated
		if !compensated {
			status = models.CheckoutStatusCompensationFailed
		}
		s.fail(ctx, span, entry, status, cerr)
		return nil, cerr
	}

	session.Cart.Clear()
	session.ClearCustomer()

	if s.cache != nil {
		if err := s.cache.InvalidateCatalog(ctx); err != nil {
			s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}

	entry.Status = models.CheckoutStatusCompleted
	s.record(ctx, entry)
	s.logger.Info("checkout completed",
		zap.Int64("order_id", order.OrderID),
		zap.Int64("customer_id", customer.CustomerID),
		zap.Int64("employee_id", employeeID),
		zap.Float64("total_amount", total),
		zap.Int("line_count", len(lines)))

	return &models.CheckoutResult{
		OrderID:     order.OrderID,
		CustomerID:  customer.CustomerID,
		EmployeeID:  employeeID,
		TotalAmount: total,
		TotalItems:  totalItems,
		LineCount:   len(lines),
		ReceiptPath: fmt.Sprintf("/v1/pos/receipts/%d", order.OrderID),
	}, nil
}

// resolveEmployee picks the explicit request value, then the authenticated
// operator, then the configured default.
func (s *checkoutService) resolveEmployee(ctx context.Context, req *models.CheckoutRequest) int64 {
	if req != nil && req.EmployeeID != nil && *req.EmployeeID > 0 {
		return *req.EmployeeID
	}
	if id, ok := common.GetEmployeeIDFromContext(ctx); ok && id > 0 {
		return id
	}
	return s.defaultEmployeeID
}

// createDetails submits every line concurrently and waits for all of them,
// returning the details that were created even when some failed.
func (s *checkoutService) createDetails(ctx context.Context, orderID int64, lines []models.CartLine) ([]models.OrderDetail, error) {
	results := make([]*models.OrderDetail, len(lines))

	var g errgroup.Group
	for i, line := range lines {
		g.Go(func() error {
			detail, err := s.details.Create(ctx, &models.CreateOrderDetailRequest{
				OrderID:   orderID,
				VariantID: line.Variant.VariantID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
			})
			if err != nil {
				return fmt.Errorf("variant %d: %w", line.Variant.VariantID, err)
			}
			results[i] = detail
			return nil
		})
	}
	err := g.Wait()

	created := make([]models.OrderDetail, 0, len(results))
	for _, d := range results {
		if d != nil {
			created = append(created, *d)
		}
	}
	return created, err
}

// compensate removes the created details and then the order header. It
// reports whether the backend is back to its state before the checkout.
func (s *checkoutService) compensate(ctx context.Context, orderID int64, created []models.OrderDetail) bool {
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for _, d := range created {
		if err := s.details.Delete(ctx, d.OrderDetailID); err != nil {
			errs = append(errs, fmt.Errorf("order detail %d: %w", d.OrderDetailID, err))
		}
	}
	if err := s.orders.Delete(ctx, orderID); err != nil {
		errs = append(errs, fmt.Errorf("order %d: %w", orderID, err))
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("checkout compensation failed, order left incomplete",
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return false
	}
	s.logger.Warn("checkout rolled back", zap.Int64("order_id", orderID), zap.Int("details_removed", len(created)))
	return true
}

func (s *checkoutService) fail(ctx context.Context, span trace.Span, entry *models.CheckoutJournalEntry, status string, cerr *CheckoutError) {
	span.RecordError(cerr)
	span.SetStatus(codes.Error, cerr.Stage)

	msg := cerr.Error()
	entry.Status = status
	entry.Error = &msg
	s.record(ctx, entry)

	s.logger.Error("checkout failed",
		zap.String("stage", cerr.Stage),
		zap.Int64("order_id", cerr.OrderID),
		zap.Bool("compensated", cerr.Compensated),
		zap.Error(cerr.Err))
}

func (s *checkoutService) record(ctx context.Context, entry *models.CheckoutJournalEntry) {
	if s.journal == nil {
		return
	}
	entry.CreatedAt = s.now().UTC()
	if err := s.journal.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("failed to write checkout journal", zap.Error(err))
	}
}

func (s *checkoutService) RecentCheckouts(ctx context.Context, status string, limit int) ([]models.CheckoutJournalEntry, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	if status == "" {
		return s.journal.ListRecent(ctx, limit)
	}
	switch status {
	case models.CheckoutStatusCompleted, models.CheckoutStatusOrderFailed,
		models.CheckoutStatusCompensated, models.CheckoutStatusCompensationFailed:
	default:
		return nil, common.NewValidationError("status", "status must be one of completed, order_failed, compensated, compensation_failed")
	}
	return s.journal.ListByStatus(ctx, status, limit)
}

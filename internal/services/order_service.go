package services

import (
	"context"

	"shoepos/internal/apiclient"
	"shoepos/internal/common"
	"shoepos/internal/models"
)

// OrderService manages orders and their lines from the back office
type OrderService interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id int64) error

	ListDetails(ctx context.Context) ([]models.OrderDetail, error)
	GetDetail(ctx context.Context, id int64) (*models.OrderDetail, error)
	CreateDetail(ctx context.Context, req *models.CreateOrderDetailRequest) (*models.OrderDetail, error)
	UpdateDetail(ctx context.Context, id int64, req *models.UpdateOrderDetailRequest) (*models.OrderDetail, error)
	DeleteDetail(ctx context.Context, id int64) error
}

type orderService struct {
	orders  apiclient.OrderAPI
	details apiclient.OrderDetailAPI
}

// NewOrderService creates a new order service instance
func NewOrderService(orders apiclient.OrderAPI, details apiclient.OrderDetailAPI) OrderService {
	return &orderService{
		orders:  orders,
		details: details,
	}
}

func (s *orderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func (s *orderService) Get(ctx context.Context, id int64) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

func (s *orderService) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := validateOrderDate(req.OrderDate); err != nil {
		return nil, err
	}
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.orders.Create(ctx, req)
}

func (s *orderService) Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error) {
	if req.OrderDate != nil {
		if err := validateOrderDate(*req.OrderDate); err != nil {
			return nil, err
		}
	}
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.orders.Update(ctx, id, req)
}

func (s *orderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

func (s *orderService) ListDetails(ctx context.Context) ([]models.OrderDetail, error) {
	return s.details.List(ctx)
}

func (s *orderService) GetDetail(ctx context.Context, id int64) (*models.OrderDetail, error) {
	return s.details.Get(ctx, id)
}

func (s *orderService) CreateDetail(ctx context.Context, req *models.CreateOrderDetailRequest) (*models.OrderDetail, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.details.Create(ctx, req)
}

func (s *orderService) UpdateDetail(ctx context.Context, id int64, req *models.UpdateOrderDetailRequest) (*models.OrderDetail, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.details.Update(ctx, id, req)
}

func (s *orderService) DeleteDetail(ctx context.Context, id int64) error {
	return s.details.Delete(ctx, id)
}

// validateOrderDate accepts a date (YYYY-MM-DD) or an RFC 3339 timestamp
func validateOrderDate(value string) error {
	if value == "" {
		return nil // reported by the struct rules
	}
	if _, err := parseOrderDate(value); err != nil {
		return common.NewValidationError("orderDate", "Order date must be YYYY-MM-DD")
	}
	return nil
}

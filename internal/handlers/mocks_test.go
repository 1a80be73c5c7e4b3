package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shoepos/internal/cart"
	"shoepos/internal/models"
)

type MockPOSService struct {
	mock.Mock
}

func (m *MockPOSService) ListProducts(ctx context.Context, categoryID *int64) ([]models.POSProduct, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.POSProduct), args.Error(1)
}

func (m *MockPOSService) AddToCart(ctx context.Context, session *cart.Session, req *models.AddCartItemRequest) (models.CartView, error) {
	args := m.Called(ctx, session, req)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *MockPOSService) UpdateQuantity(session *cart.Session, variantID int64, quantity int) (models.CartView, error) {
	args := m.Called(session, variantID, quantity)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *MockPOSService) RemoveItem(session *cart.Session, variantID int64) (models.CartView, error) {
	args := m.Called(session, variantID)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *MockPOSService) ClearCart(session *cart.Session) (models.CartView, error) {
	args := m.Called(session)
	return args.Get(0).(models.CartView), args.Error(1)
}

func (m *MockPOSService) View(session *cart.Session) models.CartView {
	args := m.Called(session)
	return args.Get(0).(models.CartView)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) List(ctx context.Context) ([]models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) Search(ctx context.Context, term string) ([]models.Customer, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerService) CreateInline(ctx context.Context, req *models.InlineCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) SelectByPhone(ctx context.Context, session *cart.Session, phone string) (*models.Customer, error) {
	args := m.Called(ctx, session, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) SelectByID(ctx context.Context, session *cart.Session, id int64) (*models.Customer, error) {
	args := m.Called(ctx, session, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerService) CreateAndSelect(ctx context.Context, session *cart.Session, req *models.InlineCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, session *cart.Session, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	args := m.Called(ctx, session, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutService) RecentCheckouts(ctx context.Context, status string, limit int) ([]models.CheckoutJournalEntry, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CheckoutJournalEntry), args.Error(1)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Build(ctx context.Context, orderID int64) (*models.Receipt, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptService) RenderPDF(ctx context.Context, orderID int64) ([]byte, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReceiptService) Archive(ctx context.Context, orderID int64) (*models.ReceiptArchive, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReceiptArchive), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) LowStock(ctx context.Context) ([]models.StockAlert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockAlert), args.Error(1)
}

package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"shoepos/internal/apiclient"
	"shoepos/internal/cart"
	"shoepos/internal/common"
	"shoepos/internal/models"
)

var (
	ErrSearchTermRequired = errors.New("please enter a phone number")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// CustomerService resolves the customer a sale is attributed to and manages
// customer records.
type CustomerService interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error

	// FindByPhone returns the customer whose phone equals phone exactly
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	// Search matches a phone substring or a case-insensitive name substring.
	// An empty term returns every customer.
	Search(ctx context.Context, term string) ([]models.Customer, error)
	CreateInline(ctx context.Context, req *models.InlineCustomerRequest) (*models.Customer, error)

	SelectByPhone(ctx context.Context, session *cart.Session, phone string) (*models.Customer, error)
	SelectByID(ctx context.Context, session *cart.Session, id int64) (*models.Customer, error)
	CreateAndSelect(ctx context.Context, session *cart.Session, req *models.InlineCustomerRequest) (*models.Customer, error)
}

type customerService struct {
	customers apiclient.CustomerAPI
	logger    *zap.Logger
}

func NewCustomerService(customers apiclient.CustomerAPI, logger *zap.Logger) CustomerService {
	return &customerService{
		customers: customers,
		logger:    logger.Named("customers"),
	}
}

func (s *customerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *customerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customers.Get(ctx, id)
}

func (s *customerService) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.customers.Create(ctx, req)
}

func (s *customerService) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.customers.Update(ctx, id, req)
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	return s.customers.Delete(ctx, id)
}

func (s *customerService) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, ErrSearchTermRequired
	}

	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].Phone == phone {
			return &customers[i], nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (s *customerService) Search(ctx context.Context, term string) ([]models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return customers, nil
	}

	lowered := strings.ToLower(term)
	matches := make([]models.Customer, 0)
	for _, c := range customers {
		if strings.Contains(c.Phone, term) || strings.Contains(strings.ToLower(c.FullName), lowered) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// CreateInline creates a customer from the POS quick form. Duplicate phone
// numbers are not detected.
func (s *customerService) CreateInline(ctx context.Context, req *models.InlineCustomerRequest) (*models.Customer, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	missing := map[string]string{}
	if req.FullName == "" {
		missing["fullName"] = "Full name and phone are required"
	}
	if req.Phone == "" {
		missing["phone"] = "Full name and phone are required"
	}
	if len(missing) > 0 {
		return nil, &common.ValidationError{Fields: missing}
	}
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	return s.customers.Create(ctx, &models.CreateCustomerRequest{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
	})
}

func (s *customerService) SelectByPhone(ctx context.Context, session *cart.Session, phone string) (*models.Customer, error) {
	customer, err := s.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	session.SelectCustomer(*customer)
	return customer, nil
}

func (s *customerService) SelectByID(ctx context.Context, session *cart.Session, id int64) (*models.Customer, error) {
	customer, err := s.customers.Get(ctx, id)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	session.SelectCustomer(*customer)
	return customer, nil
}

func (s *customerService) CreateAndSelect(ctx context.Context, session *cart.Session, req *models.InlineCustomerRequest) (*models.Customer, error) {
	customer, err := s.CreateInline(ctx, req)
	if err != nil {
		return nil, err
	}
	session.SelectCustomer(*customer)
	s.logger.Info("customer created at POS", zap.Int64("customer_id", customer.CustomerID))
	return customer, nil
}

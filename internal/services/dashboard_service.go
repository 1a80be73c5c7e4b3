package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shoepos/internal/apiclient"
	"shoepos/internal/models"
)

// Dashboard sections, as reported in DashboardStats.Errors
const (
	SectionProducts   = "products"
	SectionOrders     = "orders"
	SectionCustomers  = "customers"
	SectionEmployees  = "employees"
	SectionCategories = "categories"
)

type DashboardService interface {
	// Stats aggregates the back-office counters. A failed section is
	// flagged and left empty rather than failing the whole call.
	Stats(ctx context.Context) (*models.DashboardStats, error)
	// LowStock lists variants, and products without variants, whose stock
	// is under the threshold
	LowStock(ctx context.Context) ([]models.StockAlert, error)
}

type dashboardService struct {
	catalog   CatalogService
	orders    apiclient.OrderAPI
	customers apiclient.CustomerAPI
	employees apiclient.EmployeeAPI
	threshold int
	logger    *zap.Logger
}

func NewDashboardService(catalog CatalogService, orders apiclient.OrderAPI, customers apiclient.CustomerAPI, employees apiclient.EmployeeAPI, lowStockThreshold int, logger *zap.Logger) DashboardService {
	return &dashboardService{
		catalog:   catalog,
		orders:    orders,
		customers: customers,
		employees: employees,
		threshold: lowStockThreshold,
		logger:    logger.Named("dashboard"),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var (
		products   []models.Product
		orders     []models.Order
		customers  []models.Customer
		employees  []models.Employee
		categories []models.Category
	)

	sections := map[string]func(context.Context) error{
		SectionProducts: func(ctx context.Context) (err error) {
			products, err = s.catalog.ListProducts(ctx, nil)
			return err
		},
		SectionOrders: func(ctx context.Context) (err error) {
			orders, err = s.orders.List(ctx)
			return err
		},
		SectionCustomers: func(ctx context.Context) (err error) {
			customers, err = s.customers.List(ctx)
			return err
		},
		SectionEmployees: func(ctx context.Context) (err error) {
			employees, err = s.employees.List(ctx)
			return err
		},
		SectionCategories: func(ctx context.Context) (err error) {
			categories, err = s.catalog.ListCategories(ctx)
			return err
		},
	}

	failed := make(map[string]bool, len(sections))
	results := make(chan sectionResult, len(sections))

	var g errgroup.Group
	for name, load := range sections {
		g.Go(func() error {
			results <- sectionResult{name: name, err: load(ctx)}
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	for r := range results {
		if r.err != nil {
			failed[r.name] = true
			s.logger.Warn("dashboard section failed", zap.String("section", r.name), zap.Error(r.err))
		}
	}

	stats := &models.DashboardStats{
		LowStockItems: make([]models.StockAlert, 0),
	}
	if !failed[SectionProducts] {
		stats.TotalProducts = len(products)
		for _, p := range products {
			if p.Quantity < s.threshold {
				stats.LowStockProducts++
				stats.LowStockItems = append(stats.LowStockItems, models.StockAlert{
					ProductID:   p.ProductID,
					ProductName: p.ProductName,
					Stock:       p.Quantity,
					Threshold:   s.threshold,
				})
			}
		}
	}
	if !failed[SectionOrders] {
		stats.TotalOrders = len(orders)
		revenue := decimal.Zero
		for _, o := range orders {
			revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
		}
		stats.TotalRevenue, _ = revenue.Float64()
	}
	if !failed[SectionCustomers] {
		stats.TotalCustomers = len(customers)
	}
	if !failed[SectionEmployees] {
		stats.TotalEmployees = len(employees)
	}
	if !failed[SectionCategories] {
		stats.TotalCategories = len(categories)
	}
	if len(failed) > 0 {
		stats.Errors = failed
	}
	return stats, nil
}

type sectionResult struct {
	name string
	err  error
}

func (s *dashboardService) LowStock(ctx context.Context) ([]models.StockAlert, error) {
	products, err := s.catalog.ListProducts(ctx, nil)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.StockAlert, 0)
	for _, p := range products {
		if !p.HasVariants() {
			if p.Quantity < s.threshold {
				alerts = append(alerts, models.StockAlert{
					ProductID:   p.ProductID,
					ProductName: p.ProductName,
					Stock:       p.Quantity,
					Threshold:   s.threshold,
				})
			}
			continue
		}
		for _, v := range p.Variants {
			if v.Stock < s.threshold {
				variantID := v.VariantID
				alerts = append(alerts, models.StockAlert{
					ProductID:   p.ProductID,
					ProductName: p.ProductName,
					VariantID:   &variantID,
					Stock:       v.Stock,
					Threshold:   s.threshold,
				})
			}
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Stock < alerts[j].Stock
	})
	return alerts, nil
}

package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"shoepos/internal/models"
)

type CategoryAPI interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	Update(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type ProductAPI interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
}

type VariantAPI interface {
	List(ctx context.Context) ([]models.ProductVariant, error)
	Get(ctx context.Context, id int64) (*models.ProductVariant, error)
	Create(ctx context.Context, req *models.CreateProductVariantRequest) (*models.ProductVariant, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductVariantRequest) (*models.ProductVariant, error)
	Delete(ctx context.Context, id int64) error
	ListByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error)
}

type CustomerAPI interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type EmployeeAPI interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id int64) (*models.Employee, error)
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error)
	Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type OrderAPI interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

type OrderDetailAPI interface {
	List(ctx context.Context) ([]models.OrderDetail, error)
	Get(ctx context.Context, id int64) (*models.OrderDetail, error)
	Create(ctx context.Context, req *models.CreateOrderDetailRequest) (*models.OrderDetail, error)
	Update(ctx context.Context, id int64, req *models.UpdateOrderDetailRequest) (*models.OrderDetail, error)
	Delete(ctx context.Context, id int64) error
}

// crud implements the five standard operations for one resource path.
type crud[T any, C any, U any] struct {
	client *Client
	path   string
}

func newCrud[T any, C any, U any](client *Client, path string) crud[T, C, U] {
	return crud[T, C, U]{client: client, path: path}
}

func (r crud[T, C, U]) List(ctx context.Context) ([]T, error) {
	return r.listAt(ctx, r.path)
}

func (r crud[T, C, U]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r crud[T, C, U]) Create(ctx context.Context, req *C) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r crud[T, C, U]) Update(ctx context.Context, id int64, req *U) (*T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r crud[T, C, U]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r crud[T, C, U]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

func (r crud[T, C, U]) listAt(ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

type categoriesAPI struct {
	crud[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest]
}

type productsAPI struct {
	crud[models.Product, models.CreateProductRequest, models.UpdateProductRequest]
}

// ListByCategory calls GET /products/category/{id}
func (a *productsAPI) ListByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return a.listAt(ctx, fmt.Sprintf("%s/category/%d", a.path, categoryID))
}

type variantsAPI struct {
	crud[models.ProductVariant, models.CreateProductVariantRequest, models.UpdateProductVariantRequest]
}

// ListByProduct calls GET /product-variants/product/{id}
func (a *variantsAPI) ListByProduct(ctx context.Context, productID int64) ([]models.ProductVariant, error) {
	return a.listAt(ctx, fmt.Sprintf("%s/product/%d", a.path, productID))
}

type customersAPI struct {
	crud[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest]
}

type employeesAPI struct {
	crud[models.Employee, models.CreateEmployeeRequest, models.UpdateEmployeeRequest]
}

type ordersAPI struct {
	crud[models.Order, models.CreateOrderRequest, models.UpdateOrderRequest]
}

type orderDetailsAPI struct {
	crud[models.OrderDetail, models.CreateOrderDetailRequest, models.UpdateOrderDetailRequest]
}

func (c *Client) initResources() {
	c.Categories = &categoriesAPI{newCrud[models.Category, models.CreateCategoryRequest, models.UpdateCategoryRequest](c, "/categories")}
	c.Products = &productsAPI{newCrud[models.Product, models.CreateProductRequest, models.UpdateProductRequest](c, "/products")}
	c.Variants = &variantsAPI{newCrud[models.ProductVariant, models.CreateProductVariantRequest, models.UpdateProductVariantRequest](c, "/product-variants")}
	c.Customers = &customersAPI{newCrud[models.Customer, models.CreateCustomerRequest, models.UpdateCustomerRequest](c, "/customers")}
	c.Employees = &employeesAPI{newCrud[models.Employee, models.CreateEmployeeRequest, models.UpdateEmployeeRequest](c, "/employees")}
	c.Orders = &ordersAPI{newCrud[models.Order, models.CreateOrderRequest, models.UpdateOrderRequest](c, "/orders")}
	c.OrderDetails = &orderDetailsAPI{newCrud[models.OrderDetail, models.CreateOrderDetailRequest, models.UpdateOrderDetailRequest](c, "/order-details")}
}

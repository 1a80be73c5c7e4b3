package handlers

import (
	"net/http"

	"shoepos/internal/models"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CustomerHandlers serves back-office customer CRUD
type CustomerHandlers struct {
	customers services.CustomerService
	logger    *zap.Logger
}

func NewCustomerHandlers(customers services.CustomerService, logger *zap.Logger) *CustomerHandlers {
	return &CustomerHandlers{customers: customers, logger: logger}
}

// ListCustomers handles GET /customers. A ?q= term narrows the list by
// phone or name.
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		customers []models.Customer
		err       error
	)
	if term := c.QueryParam("q"); term != "" {
		customers, err = h.customers.Search(ctx, term)
	} else {
		customers, err = h.customers.List(ctx)
	}
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	customer, err := h.customers.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var req models.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	customer, err := h.customers.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	var req models.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	customer, err := h.customers.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	if err := h.customers.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/customers", h.ListCustomers)
	g.GET("/customers/:id", h.GetCustomer)
	g.POST("/customers", h.CreateCustomer)
	g.PUT("/customers/:id", h.UpdateCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)
}

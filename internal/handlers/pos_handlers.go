package handlers

import (
	"net/http"
	"strconv"

	"shoepos/internal/common"
	"shoepos/internal/middleware"
	"shoepos/internal/models"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// POSHandlers serves the register: product grid, session cart, customer
// resolution and checkout. Every route expects the POSSession middleware.
type POSHandlers struct {
	pos       services.POSService
	customers services.CustomerService
	checkout  services.CheckoutService
	logger    *zap.Logger
}

func NewPOSHandlers(pos services.POSService, customers services.CustomerService, checkout services.CheckoutService, logger *zap.Logger) *POSHandlers {
	return &POSHandlers{
		pos:       pos,
		customers: customers,
		checkout:  checkout,
		logger:    logger,
	}
}

type lookupCustomerRequest struct {
	Phone string `json:"phone"`
}

type selectCustomerRequest struct {
	CustomerID int64 `json:"customerId"`
}

// selectedCustomerResponse pairs the chosen customer with the resulting cart
type selectedCustomerResponse struct {
	Customer *models.Customer `json:"customer"`
	Cart     models.CartView  `json:"cart"`
}

func errNoSession(c echo.Context) error {
	return common.SendServerError(c, "POS session not resolved")
}

// ListProducts handles GET /pos/products?categoryId=
func (h *POSHandlers) ListProducts(c echo.Context) error {
	categoryID, err := queryID(c, "categoryId")
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	products, err := h.pos.ListProducts(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetCart handles GET /pos/cart
func (h *POSHandlers) GetCart(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	return c.JSON(http.StatusOK, h.pos.View(session))
}

// AddItem handles POST /pos/cart/items
func (h *POSHandlers) AddItem(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	var req models.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	view, err := h.pos.AddToCart(c.Request().Context(), session, &req)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateItem handles PUT /pos/cart/items/:variantId
func (h *POSHandlers) UpdateItem(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	variantID, err := pathID(c, "variantId")
	if err != nil {
		return respondError(c, h.logger, "Cart item", err)
	}
	var req models.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	view, err := h.pos.UpdateQuantity(session, variantID, req.Quantity)
	if err != nil {
		return respondError(c, h.logger, "Cart item", err)
	}
	return c.JSON(http.StatusOK, view)
}

// RemoveItem handles DELETE /pos/cart/items/:variantId
func (h *POSHandlers) RemoveItem(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	variantID, err := pathID(c, "variantId")
	if err != nil {
		return respondError(c, h.logger, "Cart item", err)
	}
	view, err := h.pos.RemoveItem(session, variantID)
	if err != nil {
		return respondError(c, h.logger, "Cart item", err)
	}
	return c.JSON(http.StatusOK, view)
}

// ClearCart handles DELETE /pos/cart
func (h *POSHandlers) ClearCart(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	view, err := h.pos.ClearCart(session)
	if err != nil {
		return respondError(c, h.logger, "Cart", err)
	}
	return c.JSON(http.StatusOK, view)
}

// SearchCustomers handles GET /pos/customers/search?q=
func (h *POSHandlers) SearchCustomers(c echo.Context) error {
	customers, err := h.customers.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, customers)
}

// LookupCustomer handles POST /pos/customers/lookup and selects the match
func (h *POSHandlers) LookupCustomer(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	var req lookupCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	customer, err := h.customers.SelectByPhone(c.Request().Context(), session, req.Phone)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, selectedCustomerResponse{Customer: customer, Cart: h.pos.View(session)})
}

// SelectCustomer handles POST /pos/customers/select
func (h *POSHandlers) SelectCustomer(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	var req selectCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if req.CustomerID <= 0 {
		return common.SendValidationError(c, "customerId", "customerId must be a positive integer")
	}
	customer, err := h.customers.SelectByID(c.Request().Context(), session, req.CustomerID)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusOK, selectedCustomerResponse{Customer: customer, Cart: h.pos.View(session)})
}

// DeselectCustomer handles DELETE /pos/customers/selected
func (h *POSHandlers) DeselectCustomer(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	session.ClearCustomer()
	return c.JSON(http.StatusOK, h.pos.View(session))
}

// CreateCustomer handles POST /pos/customers: create inline and select
func (h *POSHandlers) CreateCustomer(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	var req models.InlineCustomerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	customer, err := h.customers.CreateAndSelect(c.Request().Context(), session, &req)
	if err != nil {
		return respondError(c, h.logger, "Customer", err)
	}
	return c.JSON(http.StatusCreated, selectedCustomerResponse{Customer: customer, Cart: h.pos.View(session)})
}

// Checkout handles POST /pos/checkout
func (h *POSHandlers) Checkout(c echo.Context) error {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		return errNoSession(c)
	}
	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := common.ValidateStruct(&req); err != nil {
		return respondError(c, h.logger, "Checkout", err)
	}
	result, err := h.checkout.Checkout(c.Request().Context(), session, &req)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusCreated, result)
}

// RecentCheckouts handles GET /pos/checkouts?limit=&status=
func (h *POSHandlers) RecentCheckouts(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return common.SendValidationError(c, "limit", "limit must be a non-negative integer")
		}
		limit = n
	}
	entries, err := h.checkout.RecentCheckouts(c.Request().Context(), c.QueryParam("status"), limit)
	if err != nil {
		return respondError(c, h.logger, "Checkout", err)
	}
	return c.JSON(http.StatusOK, entries)
}

// RegisterRoutes mounts the register routes on g
func (h *POSHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.ListProducts)

	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddItem)
	g.PUT("/cart/items/:variantId", h.UpdateItem)
	g.DELETE("/cart/items/:variantId", h.RemoveItem)
	g.DELETE("/cart", h.ClearCart)

	g.GET("/customers/search", h.SearchCustomers)
	g.POST("/customers/lookup", h.LookupCustomer)
	g.POST("/customers/select", h.SelectCustomer)
	g.DELETE("/customers/selected", h.DeselectCustomer)
	g.POST("/customers", h.CreateCustomer)

	g.POST("/checkout", h.Checkout)
	g.GET("/checkouts", h.RecentCheckouts)
}

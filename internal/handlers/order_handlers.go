package handlers

import (
	"net/http"

	"shoepos/internal/models"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// OrderHandlers serves back-office order and order detail CRUD
type OrderHandlers struct {
	orders services.OrderService
	logger *zap.Logger
}

func NewOrderHandlers(orders services.OrderService, logger *zap.Logger) *OrderHandlers {
	return &OrderHandlers{orders: orders, logger: logger}
}

// ListOrders handles GET /orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	order, err := h.orders.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /orders/:id
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	order, err := h.orders.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListOrderDetails handles GET /order-details
func (h *OrderHandlers) ListOrderDetails(c echo.Context) error {
	details, err := h.orders.ListDetails(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *OrderHandlers) GetOrderDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	detail, err := h.orders.GetDetail(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandlers) CreateOrderDetail(c echo.Context) error {
	var req models.CreateOrderDetailRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	detail, err := h.orders.CreateDetail(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *OrderHandlers) UpdateOrderDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	var req models.UpdateOrderDetailRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	detail, err := h.orders.UpdateDetail(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *OrderHandlers) DeleteOrderDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	if err := h.orders.DeleteDetail(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Order detail", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.POST("/orders", h.CreateOrder)
	g.PUT("/orders/:id", h.UpdateOrder)
	g.DELETE("/orders/:id", h.DeleteOrder)

	g.GET("/order-details", h.ListOrderDetails)
	g.GET("/order-details/:id", h.GetOrderDetail)
	g.POST("/order-details", h.CreateOrderDetail)
	g.PUT("/order-details/:id", h.UpdateOrderDetail)
	g.DELETE("/order-details/:id", h.DeleteOrderDetail)
}

package handlers

import (
	"net/http"

	"shoepos/internal/models"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EmployeeHandlers struct {
	employees services.EmployeeService
	logger    *zap.Logger
}

func NewEmployeeHandlers(employees services.EmployeeService, logger *zap.Logger) *EmployeeHandlers {
	return &EmployeeHandlers{employees: employees, logger: logger}
}

func (h *EmployeeHandlers) ListEmployees(c echo.Context) error {
	employees, err := h.employees.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	return c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandlers) GetEmployee(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	employee, err := h.employees.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandlers) CreateEmployee(c echo.Context) error {
	var req models.CreateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	employee, err := h.employees.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandlers) UpdateEmployee(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	var req models.UpdateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	employee, err := h.employees.Update(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandlers) DeleteEmployee(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	if err := h.employees.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Employee", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/employees", h.ListEmployees)
	g.GET("/employees/:id", h.GetEmployee)
	g.POST("/employees", h.CreateEmployee)
	g.PUT("/employees/:id", h.UpdateEmployee)
	g.DELETE("/employees/:id", h.DeleteEmployee)
}

package services

import (
	"context"

	"shoepos/internal/apiclient"
	"shoepos/internal/common"
	"shoepos/internal/models"
)

type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id int64) (*models.Employee, error)
	Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error)
	Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	employees apiclient.EmployeeAPI
}

func NewEmployeeService(employees apiclient.EmployeeAPI) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.employees.List(ctx)
}

func (s *employeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return s.employees.Get(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.Employee, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.employees.Create(ctx, req)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.Employee, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	return s.employees.Update(ctx, id, req)
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}

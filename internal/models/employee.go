package models

type Employee struct {
	EmployeeID int64   `json:"employeeId"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Position   string  `json:"position"`
	Salary     float64 `json:"salary"`
	HireDate   string  `json:"hireDate"`
}

type CreateEmployeeRequest struct {
	FullName string  `json:"fullName" validate:"required"`
	Phone    string  `json:"phone" validate:"required"`
	Position string  `json:"position" validate:"required"`
	Salary   float64 `json:"salary" validate:"gte=0"`
	HireDate string  `json:"hireDate" validate:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName *string  `json:"fullName,omitempty" validate:"omitempty,min=1"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,min=1"`
	Position *string  `json:"position,omitempty" validate:"omitempty,min=1"`
	Salary   *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
	HireDate *string  `json:"hireDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

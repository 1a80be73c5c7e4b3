package models

// Customer is a buyer record. Phone is used as an informal lookup key and is
// not unique on the backend.
type Customer struct {
	CustomerID int64  `json:"customerId"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address"`
}

// CreateCustomerRequest is the back-office customer form; every field is required.
type CreateCustomerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required"`
}

// InlineCustomerRequest is the POS checkout form: only name and phone are required.
type InlineCustomerRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Address  string `json:"address"`
}

type UpdateCustomerRequest struct {
	FullName *string `json:"fullName,omitempty" validate:"omitempty,min=1"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=1"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  *string `json:"address,omitempty" validate:"omitempty,min=1"`
}

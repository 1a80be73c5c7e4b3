package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutRequest struct {
	EmployeeID *int64 `json:"employeeId,omitempty" validate:"omitempty,gt=0"`
}

// CheckoutResult describes a committed sale.
type CheckoutResult struct {
	OrderID     int64   `json:"orderId"`
	CustomerID  int64   `json:"customerId"`
	EmployeeID  int64   `json:"employeeId"`
	TotalAmount float64 `json:"totalAmount"`
	TotalItems  int     `json:"totalItems"`
	LineCount   int     `json:"lineCount"`
	ReceiptPath string  `json:"receiptPath"`
}

// Checkout journal statuses.
const (
	CheckoutStatusCompleted          = "completed"
	CheckoutStatusOrderFailed        = "order_failed"
	CheckoutStatusCompensated        = "compensated"
	CheckoutStatusCompensationFailed = "compensation_failed"
)

// CheckoutJournalEntry records one checkout attempt.
type CheckoutJournalEntry struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SessionID   uuid.UUID `json:"session_id" db:"session_id"`
	OrderID     *int64    `json:"order_id" db:"order_id"`
	CustomerID  int64     `json:"customer_id" db:"customer_id"`
	EmployeeID  int64     `json:"employee_id" db:"employee_id"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	LineCount   int       `json:"line_count" db:"line_count"`
	Status      string    `json:"status" db:"status"`
	Error       *string   `json:"error" db:"error"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

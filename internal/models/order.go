package models

// OrderDateLayout is the date-only format the backend expects for orderDate.
const OrderDateLayout = "2006-01-02"

// Order is a committed sale owned by the backend.
type Order struct {
	OrderID      int64         `json:"orderId"`
	OrderDate    string        `json:"orderDate"`
	CustomerID   int64         `json:"customerId"`
	EmployeeID   int64         `json:"employeeId"`
	TotalAmount  float64       `json:"totalAmount"`
	Customer     *Customer     `json:"customer,omitempty"`
	Employee     *Employee     `json:"employee,omitempty"`
	OrderDetails []OrderDetail `json:"orderDetails,omitempty"`
}

type CreateOrderRequest struct {
	OrderDate   string  `json:"orderDate" validate:"required"`
	CustomerID  int64   `json:"customerId" validate:"gt=0"`
	EmployeeID  int64   `json:"employeeId" validate:"gt=0"`
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
}

type UpdateOrderRequest struct {
	OrderDate   *string  `json:"orderDate,omitempty" validate:"omitempty,min=1"`
	CustomerID  *int64   `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	EmployeeID  *int64   `json:"employeeId,omitempty" validate:"omitempty,gt=0"`
	TotalAmount *float64 `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
}

// OrderDetail is one persisted order line: a variant, its quantity and the
// unit price captured at sale time.
type OrderDetail struct {
	OrderDetailID int64           `json:"orderDetailId"`
	OrderID       int64           `json:"orderId"`
	VariantID     int64           `json:"variantId"`
	ProductID     int64           `json:"productId,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     float64         `json:"unitPrice"`
	Variant       *ProductVariant `json:"variant,omitempty"`
	Product       *Product        `json:"product,omitempty"`
}

type CreateOrderDetailRequest struct {
	OrderID   int64   `json:"orderId" validate:"gt=0"`
	VariantID int64   `json:"variantId" validate:"gt=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

type UpdateOrderDetailRequest struct {
	OrderID   *int64   `json:"orderId,omitempty" validate:"omitempty,gt=0"`
	VariantID *int64   `json:"variantId,omitempty" validate:"omitempty,gt=0"`
	Quantity  *int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	UnitPrice *float64 `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
}

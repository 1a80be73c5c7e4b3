package models

// Receipt is a printable summary of a committed order.
type Receipt struct {
	StoreName     string        `json:"storeName"`
	StoreAddress  string        `json:"storeAddress"`
	StorePhone    string        `json:"storePhone"`
	OrderID       int64         `json:"orderId"`
	OrderDate     string        `json:"orderDate"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone,omitempty"`
	EmployeeName  string        `json:"employeeName,omitempty"`
	Lines         []ReceiptLine `json:"lines"`
	TotalItems    int           `json:"totalItems"`
	TotalAmount   float64       `json:"totalAmount"`
}

type ReceiptLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// ReceiptArchive is a stored receipt PDF.
type ReceiptArchive struct {
	OrderID   int64  `json:"orderId"`
	Bucket    string `json:"bucket"`
	ObjectKey string `json:"objectKey"`
	URL       string `json:"url"`
}

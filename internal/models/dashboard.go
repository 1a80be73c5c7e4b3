package models

// DashboardStats summarizes the back office. A section whose backend read
// failed is reported in Errors and counted as empty.
type DashboardStats struct {
	TotalProducts    int             `json:"totalProducts"`
	LowStockProducts int             `json:"lowStockProducts"`
	LowStockItems    []StockAlert    `json:"lowStockItems"`
	TotalOrders      int             `json:"totalOrders"`
	TotalRevenue     float64         `json:"totalRevenue"`
	TotalCustomers   int             `json:"totalCustomers"`
	TotalEmployees   int             `json:"totalEmployees"`
	TotalCategories  int             `json:"totalCategories"`
	Errors           map[string]bool `json:"errors,omitempty"`
}

// StockAlert flags a variant, or a product without variants, below the threshold.
type StockAlert struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	VariantID   *int64 `json:"variantId,omitempty"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
}

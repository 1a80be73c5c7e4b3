package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shoepos/internal/apiclient"
	"shoepos/internal/models"
)

var ErrArchiveDisabled = errors.New("receipt archive storage is not configured")

const receiptURLExpiry = 24 * time.Hour

// StoreInfo is the header printed on every receipt
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptService builds, renders and archives receipts of committed orders
type ReceiptService interface {
	Build(ctx context.Context, orderID int64) (*models.Receipt, error)
	RenderPDF(ctx context.Context, orderID int64) ([]byte, error)
	Archive(ctx context.Context, orderID int64) (*models.ReceiptArchive, error)
}

type receiptService struct {
	orders    apiclient.OrderAPI
	customers apiclient.CustomerAPI
	employees apiclient.EmployeeAPI
	storage   ObjectStorage
	bucket    string
	store     StoreInfo
	logger    *zap.Logger
}

// NewReceiptService creates a receipt service. storage may be nil, in which
// case Archive returns ErrArchiveDisabled.
func NewReceiptService(orders apiclient.OrderAPI, customers apiclient.CustomerAPI, employees apiclient.EmployeeAPI, storage ObjectStorage, bucket string, store StoreInfo, logger *zap.Logger) ReceiptService {
	return &receiptService{
		orders:    orders,
		customers: customers,
		employees: employees,
		storage:   storage,
		bucket:    bucket,
		store:     store,
		logger:    logger.Named("receipts"),
	}
}

func (s *receiptService) Build(ctx context.Context, orderID int64) (*models.Receipt, error) {
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	customer := order.Customer
	if customer == nil && order.CustomerID > 0 {
		if c, err := s.customers.Get(ctx, order.CustomerID); err == nil {
			customer = c
		} else {
			s.logger.Debug("receipt customer lookup failed", zap.Int64("customer_id", order.CustomerID), zap.Error(err))
		}
	}
	employee := order.Employee
	if employee == nil && order.EmployeeID > 0 {
		if e, err := s.employees.Get(ctx, order.EmployeeID); err == nil {
			employee = e
		} else {
			s.logger.Debug("receipt employee lookup failed", zap.Int64("employee_id", order.EmployeeID), zap.Error(err))
		}
	}

	receipt := &models.Receipt{
		StoreName:    s.store.Name,
		StoreAddress: s.store.Address,
		StorePhone:   s.store.Phone,
		OrderID:      order.OrderID,
		OrderDate:    order.OrderDate,
		CustomerName: "Walk-in",
		EmployeeName: "System",
		Lines:        make([]models.ReceiptLine, 0, len(order.OrderDetails)),
		TotalAmount:  order.TotalAmount,
	}
	if customer != nil {
		receipt.CustomerName = customer.FullName
		receipt.CustomerPhone = customer.Phone
	}
	if employee != nil {
		receipt.EmployeeName = employee.FullName
	}

	for _, d := range order.OrderDetails {
		lineTotal, _ := decimal.NewFromFloat(d.UnitPrice).Mul(decimal.NewFromInt(int64(d.Quantity))).Float64()
		receipt.Lines = append(receipt.Lines, models.ReceiptLine{
			Description: describeDetail(d),
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			LineTotal:   lineTotal,
		})
		receipt.TotalItems += d.Quantity
	}
	return receipt, nil
}

// describeDetail names the product of a line with its size and color
func describeDetail(d models.OrderDetail) string {
	name := "Product"
	switch {
	case d.Variant != nil && d.Variant.Product != nil && d.Variant.Product.ProductName != "":
		name = d.Variant.Product.ProductName
	case d.Product != nil && d.Product.ProductName != "":
		name = d.Product.ProductName
	}
	if d.Variant == nil {
		return name
	}

	var attrs []string
	if d.Variant.Size != nil && *d.Variant.Size != "" {
		attrs = append(attrs, "Size: "+*d.Variant.Size)
	}
	if d.Variant.Color != nil && *d.Variant.Color != "" {
		attrs = append(attrs, "Color: "+*d.Variant.Color)
	}
	if len(attrs) == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(attrs, ", "))
}

func (s *receiptService) RenderPDF(ctx context.Context, orderID int64) ([]byte, error) {
	receipt, err := s.Build(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return renderReceiptPDF(receipt)
}

func renderReceiptPDF(r *models.Receipt) ([]byte, error) {
	const margin = 15.0

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	// Store header
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(33, 37, 41)
	pdf.CellFormat(0, 9, r.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, r.StoreAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+r.StorePhone, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Order info
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Order #%d", r.OrderID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Date: "+formatReceiptDate(r.OrderDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Customer: "+r.CustomerName)
	pdf.Ln(6)
	if r.CustomerPhone != "" {
		pdf.Cell(0, 6, "Phone: "+r.CustomerPhone)
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, "Cashier: "+r.EmployeeName)
	pdf.Ln(8)

	// Lines
	colWidths := []float64{60, 14, 22, 22}
	headers := []string{"Item", "Qty", "Price", "Total"}
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	if len(r.Lines) == 0 {
		pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2]+colWidths[3], 7, "No items in this order", "1", 1, "C", false, 0, "")
	}
	for _, l := range r.Lines {
		pdf.CellFormat(colWidths[0], 7, l.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, fmt.Sprintf("%d", l.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, fmt.Sprintf("%.2f", l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, fmt.Sprintf("%.2f", l.LineTotal), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(96, 6, "Items:", "", 0, "R", false, 0, "")
	pdf.CellFormat(22, 6, fmt.Sprintf("%d", r.TotalItems), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(96, 7, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(22, 7, fmt.Sprintf("%.2f", r.TotalAmount), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, "Thank you for your purchase!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *receiptService) Archive(ctx context.Context, orderID int64) (*models.ReceiptArchive, error) {
	if s.storage == nil {
		return nil, ErrArchiveDisabled
	}

	data, err := s.RenderPDF(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.storage.EnsureBucketExists(ctx, s.bucket); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket %s: %w", s.bucket, err)
	}

	key := fmt.Sprintf("receipts/order-%d.pdf", orderID)
	if err := s.storage.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, receiptURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign receipt URL: %w", err)
	}

	s.logger.Info("receipt archived", zap.Int64("order_id", orderID), zap.String("object_key", key))
	return &models.ReceiptArchive{
		OrderID:   orderID,
		Bucket:    s.bucket,
		ObjectKey: key,
		URL:       url,
	}, nil
}

// parseOrderDate accepts the backend's date-only form and RFC 3339 timestamps
func parseOrderDate(value string) (time.Time, error) {
	if t, err := time.Parse(models.OrderDateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func formatReceiptDate(value string) string {
	t, err := parseOrderDate(value)
	if err != nil {
		return value
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("02 Jan 2006")
	}
	return t.Format("02 Jan 2006 15:04")
}

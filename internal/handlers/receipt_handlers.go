package handlers

import (
	"fmt"
	"net/http"

	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ReceiptHandlers serves receipts for committed orders
type ReceiptHandlers struct {
	receipts services.ReceiptService
	logger   *zap.Logger
}

func NewReceiptHandlers(receipts services.ReceiptService, logger *zap.Logger) *ReceiptHandlers {
	return &ReceiptHandlers{receipts: receipts, logger: logger}
}

// GetReceipt handles GET /pos/receipts/:id
func (h *ReceiptHandlers) GetReceipt(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	receipt, err := h.receipts.Build(c.Request().Context(), orderID)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusOK, receipt)
}

// DownloadReceipt handles GET /pos/receipts/:id/pdf
func (h *ReceiptHandlers) DownloadReceipt(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	pdf, err := h.receipts.RenderPDF(c.Request().Context(), orderID)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, orderID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ArchiveReceipt handles POST /pos/receipts/:id/archive
func (h *ReceiptHandlers) ArchiveReceipt(c echo.Context) error {
	orderID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	archive, err := h.receipts.Archive(c.Request().Context(), orderID)
	if err != nil {
		return respondError(c, h.logger, "Order", err)
	}
	return c.JSON(http.StatusCreated, archive)
}

func (h *ReceiptHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/receipts/:id", h.GetReceipt)
	g.GET("/receipts/:id/pdf", h.DownloadReceipt)
	g.POST("/receipts/:id/archive", h.ArchiveReceipt)
}

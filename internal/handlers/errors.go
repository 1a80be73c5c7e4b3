package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shoepos/internal/apiclient"
	"shoepos/internal/common"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// posErrorCodes maps register precondition failures to their error codes
var posErrorCodes = []struct {
	err  error
	code string
}{
	{services.ErrEmptyCart, "EMPTY_CART"},
	{services.ErrNoCustomerSelected, "NO_CUSTOMER_SELECTED"},
	{services.ErrNoVariants, "NO_VARIANTS"},
	{services.ErrVariantNotFound, "VARIANT_NOT_FOUND"},
	{services.ErrOutOfStock, "OUT_OF_STOCK"},
	{services.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{services.ErrSearchTermRequired, "SEARCH_TERM_REQUIRED"},
}

// respondError translates a service error into the standard error response.
// resource names the record for 404 messages.
func respondError(c echo.Context, logger *zap.Logger, resource string, err error) error {
	var validationErr *common.ValidationError
	if errors.As(err, &validationErr) {
		return common.SendValidationErrors(c, validationErr.Fields)
	}

	for _, pe := range posErrorCodes {
		if errors.Is(err, pe.err) {
			return common.SendUnprocessable(c, pe.code, err.Error())
		}
	}

	switch {
	case errors.Is(err, services.ErrCheckoutInProgress):
		return common.SendConflict(c, "CHECKOUT_IN_PROGRESS", "Checkout is already in progress")
	case errors.Is(err, services.ErrCustomerNotFound):
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("CUSTOMER_NOT_FOUND", "Customer not found", nil))
	case errors.Is(err, services.ErrCartLineNotFound):
		return common.SendNotFoundError(c, "Cart item")
	case errors.Is(err, services.ErrJournalDisabled), errors.Is(err, services.ErrArchiveDisabled):
		return c.JSON(http.StatusServiceUnavailable, common.CreateErrorResponse("FEATURE_DISABLED", err.Error(), nil))
	}

	var checkoutErr *services.CheckoutError
	if errors.As(err, &checkoutErr) {
		details := map[string]string{
			"stage":       checkoutErr.Stage,
			"compensated": strconv.FormatBool(checkoutErr.Compensated),
		}
		if checkoutErr.OrderID != 0 {
			details["orderId"] = strconv.FormatInt(checkoutErr.OrderID, 10)
		}
		return c.JSON(http.StatusBadGateway, common.CreateErrorResponse(
			"CHECKOUT_FAILED", "Failed to process order. Please try again.", details))
	}

	if apiErr, ok := apiclient.AsAPIError(err); ok {
		switch apiErr.Kind {
		case apiclient.KindNotFound:
			return common.SendNotFoundError(c, resource)
		case apiclient.KindValidation:
			return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", apiErr.Message, apiErr.Fields))
		case apiclient.KindConflict:
			return common.SendConflict(c, "CONFLICT", apiErr.Message)
		}
		logger.Warn("backend request failed",
			zap.String("method", apiErr.Method),
			zap.String("path", apiErr.Path),
			zap.Int("status", apiErr.StatusCode),
			zap.Error(err))
		return common.SendBackendError(c, apiErr.Message)
	}

	logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return common.SendServerError(c, "Internal server error")
}

// pathID parses the named path parameter as a backend id
func pathID(c echo.Context, name string) (int64, error) {
	id, err := common.ParseID(c.Param(name), name)
	if err != nil {
		return 0, common.NewValidationError(name, err.Error())
	}
	return id, nil
}

// queryID parses an optional id query parameter
func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := common.ParseID(raw, name)
	if err != nil {
		return nil, common.NewValidationError(name, err.Error())
	}
	return &id, nil
}

func bindError(c echo.Context) error {
	return common.SendClientError(c, "Invalid request format")
}

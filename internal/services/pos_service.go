package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shoepos/internal/cart"
	"shoepos/internal/common"
	"shoepos/internal/models"
)

var (
	ErrNoVariants        = errors.New("this product has no variants available")
	ErrVariantNotFound   = errors.New("variant not found for product")
	ErrOutOfStock        = errors.New("this variant is out of stock")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrCartLineNotFound  = errors.New("item is not in the cart")
)

// POSService drives the point-of-sale screen: the product grid and the
// cart of a session.
type POSService interface {
	ListProducts(ctx context.Context, categoryID *int64) ([]models.POSProduct, error)
	AddToCart(ctx context.Context, session *cart.Session, req *models.AddCartItemRequest) (models.CartView, error)
	UpdateQuantity(session *cart.Session, variantID int64, quantity int) (models.CartView, error)
	// Cart edits fail with ErrCheckoutInProgress while the session is
	// checking out.
	RemoveItem(session *cart.Session, variantID int64) (models.CartView, error)
	ClearCart(session *cart.Session) (models.CartView, error)
	View(session *cart.Session) models.CartView
}

type posService struct {
	catalog CatalogService
	logger  *zap.Logger
}

func NewPOSService(catalog CatalogService, logger *zap.Logger) POSService {
	return &posService{
		catalog: catalog,
		logger:  logger.Named("pos"),
	}
}

func (s *posService) ListProducts(ctx context.Context, categoryID *int64) ([]models.POSProduct, error) {
	products, err := s.catalog.ListProducts(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	out := make([]models.POSProduct, 0, len(products))
	for _, p := range products {
		stock := p.TotalStock()
		out = append(out, models.POSProduct{
			Product:    p,
			TotalStock: stock,
			OutOfStock: stock == 0,
		})
	}
	return out, nil
}

// AddToCart checks the chosen variant against its stock, counting what is
// already in the cart, before adding it.
func (s *posService) AddToCart(ctx context.Context, session *cart.Session, req *models.AddCartItemRequest) (models.CartView, error) {
	if err := common.ValidateStruct(req); err != nil {
		return models.CartView{}, err
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return models.CartView{}, err
	}
	if !product.HasVariants() {
		return models.CartView{}, ErrNoVariants
	}

	variant, ok := product.Variant(req.VariantID)
	if !ok {
		return models.CartView{}, ErrVariantNotFound
	}
	if variant.Stock <= 0 {
		return models.CartView{}, ErrOutOfStock
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	// the line keeps the product without its variant list
	snapshot := *product
	snapshot.Variants = nil
	variant.Product = nil

	err = session.EditCart(func(c *cart.Cart) error {
		existing := 0
		if line, ok := c.Line(variant.VariantID); ok {
			existing = line.Quantity
		}
		if existing+quantity > variant.Stock {
			return fmt.Errorf("%w: only %d in stock", ErrInsufficientStock, variant.Stock)
		}
		c.AddItem(snapshot, variant, quantity)
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	s.logger.Debug("item added to cart",
		zap.String("session_id", session.ID.String()),
		zap.Int64("variant_id", variant.VariantID),
		zap.Int("quantity", quantity))
	return session.View(), nil
}

// UpdateQuantity clamps quantity to the stock captured when the line was added.
func (s *posService) UpdateQuantity(session *cart.Session, variantID int64, quantity int) (models.CartView, error) {
	err := session.EditCart(func(c *cart.Cart) error {
		line, ok := c.Line(variantID)
		if !ok {
			return ErrCartLineNotFound
		}
		if quantity > line.Variant.Stock {
			quantity = line.Variant.Stock
		}
		c.UpdateQuantity(variantID, quantity)
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return session.View(), nil
}

func (s *posService) RemoveItem(session *cart.Session, variantID int64) (models.CartView, error) {
	err := session.EditCart(func(c *cart.Cart) error {
		c.RemoveItem(variantID)
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return session.View(), nil
}

func (s *posService) ClearCart(session *cart.Session) (models.CartView, error) {
	err := session.EditCart(func(c *cart.Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return models.CartView{}, err
	}
	return session.View(), nil
}

func (s *posService) View(session *cart.Session) models.CartView {
	return session.View()
}

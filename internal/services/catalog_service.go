package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shoepos/internal/apiclient"
	"shoepos/internal/caching"
	"shoepos/internal/common"
	"shoepos/internal/models"
)

// CatalogService manages categories, products and product variants
type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListProducts(ctx context.Context, categoryID *int64) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListVariants(ctx context.Context, productID *int64) ([]models.ProductVariant, error)
	GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error)
	CreateVariant(ctx context.Context, req *models.CreateProductVariantRequest) (*models.ProductVariant, error)
	UpdateVariant(ctx context.Context, id int64, req *models.UpdateProductVariantRequest) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, id int64) error

	// WarmCache preloads categories and the full product list
	WarmCache(ctx context.Context) error
}

type catalogService struct {
	categories apiclient.CategoryAPI
	products   apiclient.ProductAPI
	variants   apiclient.VariantAPI
	cache      caching.CatalogCache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewCatalogService creates a catalog service reading through cache
func NewCatalogService(categories apiclient.CategoryAPI, products apiclient.ProductAPI, variants apiclient.VariantAPI, cache caching.CatalogCache, ttl time.Duration, logger *zap.Logger) CatalogService {
	if cache == nil {
		cache = caching.NoopCache{}
	}
	return &catalogService{
		categories: categories,
		products:   products,
		variants:   variants,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.Named("catalog"),
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if cached, err := s.cache.GetCategories(ctx); err != nil {
		s.logger.Warn("category cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCategories(ctx, categories, s.ttl); err != nil {
		s.logger.Warn("category cache write failed", zap.Error(err))
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	category, err := s.categories.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id int64, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	category, err := s.categories.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, categoryID *int64) ([]models.Product, error) {
	if cached, err := s.cache.GetProductList(ctx, categoryID); err != nil {
		s.logger.Warn("product list cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	var (
		products []models.Product
		err      error
	)
	if categoryID != nil {
		products, err = s.products.ListByCategory(ctx, *categoryID)
	} else {
		products, err = s.products.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProductList(ctx, categoryID, products, s.ttl); err != nil {
		s.logger.Warn("product list cache write failed", zap.Error(err))
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if cached, err := s.cache.GetProduct(ctx, id); err != nil {
		s.logger.Warn("product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetProduct(ctx, product, s.ttl); err != nil {
		s.logger.Warn("product cache write failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	product, err := s.products.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	product, err := s.products.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListVariants(ctx context.Context, productID *int64) ([]models.ProductVariant, error) {
	if productID != nil {
		return s.variants.ListByProduct(ctx, *productID)
	}
	return s.variants.List(ctx)
}

func (s *catalogService) GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	return s.variants.Get(ctx, id)
}

func (s *catalogService) CreateVariant(ctx context.Context, req *models.CreateProductVariantRequest) (*models.ProductVariant, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	variant, err := s.variants.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return variant, nil
}

func (s *catalogService) UpdateVariant(ctx context.Context, id int64, req *models.UpdateProductVariantRequest) (*models.ProductVariant, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	variant, err := s.variants.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return variant, nil
}

func (s *catalogService) DeleteVariant(ctx context.Context, id int64) error {
	if err := s.variants.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) WarmCache(ctx context.Context) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.SetCategories(ctx, categories, s.ttl); err != nil {
		return err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.SetProductList(ctx, nil, products, s.ttl); err != nil {
		return err
	}
	for i := range products {
		if err := s.cache.SetProduct(ctx, &products[i], s.ttl); err != nil {
			return err
		}
	}

	s.logger.Debug("catalog cache warmed",
		zap.Int("categories", len(categories)),
		zap.Int("products", len(products)))
	return nil
}

// invalidate drops cached catalog reads after a mutation. Stock and prices
// are shared between list and item keys, so everything goes.
func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

package handlers

import (
	"net/http"

	"shoepos/internal/models"
	"shoepos/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogHandlers serves back-office category, product and variant CRUD
type CatalogHandlers struct {
	catalog services.CatalogService
	logger  *zap.Logger
}

func NewCatalogHandlers(catalog services.CatalogService, logger *zap.Logger) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog, logger: logger}
}

// ListCategories handles GET /categories
func (h *CatalogHandlers) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /categories/:id
func (h *CatalogHandlers) GetCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	category, err := h.catalog.GetCategory(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /categories
func (h *CatalogHandlers) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	category, err := h.catalog.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /categories/:id
func (h *CatalogHandlers) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	var req models.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	category, err := h.catalog.UpdateCategory(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /categories/:id
func (h *CatalogHandlers) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	if err := h.catalog.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListProducts handles GET /products, optionally filtered by ?categoryId=
func (h *CatalogHandlers) ListProducts(c echo.Context) error {
	categoryID, err := queryID(c, "categoryId")
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return h.listProducts(c, categoryID)
}

// ListProductsByCategory handles GET /products/category/:id
func (h *CatalogHandlers) ListProductsByCategory(c echo.Context) error {
	categoryID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Category", err)
	}
	return h.listProducts(c, &categoryID)
}

func (h *CatalogHandlers) listProducts(c echo.Context, categoryID *int64) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), categoryID)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id
func (h *CatalogHandlers) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /products
func (h *CatalogHandlers) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	product, err := h.catalog.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id
func (h *CatalogHandlers) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	product, err := h.catalog.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id
func (h *CatalogHandlers) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListVariants handles GET /product-variants, optionally filtered by ?productId=
func (h *CatalogHandlers) ListVariants(c echo.Context) error {
	productID, err := queryID(c, "productId")
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return h.listVariants(c, productID)
}

// ListVariantsByProduct handles GET /product-variants/product/:id
func (h *CatalogHandlers) ListVariantsByProduct(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product", err)
	}
	return h.listVariants(c, &productID)
}

func (h *CatalogHandlers) listVariants(c echo.Context, productID *int64) error {
	variants, err := h.catalog.ListVariants(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return c.JSON(http.StatusOK, variants)
}

func (h *CatalogHandlers) GetVariant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	variant, err := h.catalog.GetVariant(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return c.JSON(http.StatusOK, variant)
}

func (h *CatalogHandlers) CreateVariant(c echo.Context) error {
	var req models.CreateProductVariantRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	variant, err := h.catalog.CreateVariant(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return c.JSON(http.StatusCreated, variant)
}

func (h *CatalogHandlers) UpdateVariant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	var req models.UpdateProductVariantRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	variant, err := h.catalog.UpdateVariant(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return c.JSON(http.StatusOK, variant)
}

func (h *CatalogHandlers) DeleteVariant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	if err := h.catalog.DeleteVariant(c.Request().Context(), id); err != nil {
		return respondError(c, h.logger, "Product variant", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterRoutes mounts the catalog CRUD routes on g
func (h *CatalogHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.GET("/categories/:id", h.GetCategory)
	g.POST("/categories", h.CreateCategory)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)

	g.GET("/products", h.ListProducts)
	g.GET("/products/category/:id", h.ListProductsByCategory)
	g.GET("/products/:id", h.GetProduct)
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	g.GET("/product-variants", h.ListVariants)
	g.GET("/product-variants/product/:id", h.ListVariantsByProduct)
	g.GET("/product-variants/:id", h.GetVariant)
	g.POST("/product-variants", h.CreateVariant)
	g.PUT("/product-variants/:id", h.UpdateVariant)
	g.DELETE("/product-variants/:id", h.DeleteVariant)
}


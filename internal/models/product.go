package models

// Product is a sellable catalog item. A product either sells as a single
// unit or exclusively through its variants.
type Product struct {
	ProductID   int64            `json:"productId"`
	ProductName string           `json:"productName"`
	Price       float64          `json:"price"`
	Quantity    int              `json:"quantity"`
	CategoryID  int64            `json:"categoryId"`
	Category    *Category        `json:"category,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// HasVariants reports whether the product sells through variants.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// TotalStock sums variant stock, or returns the aggregate quantity for
// products without variants.
func (p *Product) TotalStock() int {
	if !p.HasVariants() {
		return p.Quantity
	}
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Variant returns the variant with the given id, if the product has it.
func (p *Product) Variant(variantID int64) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.VariantID == variantID {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// ProductVariant is a size/color configuration of a product with its own stock.
type ProductVariant struct {
	VariantID int64    `json:"variantId"`
	ProductID int64    `json:"productId"`
	Size      *string  `json:"size,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Stock     int      `json:"stock"`
	Product   *Product `json:"product,omitempty"`
}

// VariantDefinition is a variant embedded in product create/update payloads.
type VariantDefinition struct {
	Size  *string `json:"size,omitempty" validate:"omitempty,max=50"`
	Color *string `json:"color,omitempty" validate:"omitempty,max=50"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type CreateProductRequest struct {
	ProductName string              `json:"productName" validate:"required"`
	Price       float64             `json:"price" validate:"gt=0"`
	Quantity    int                 `json:"quantity" validate:"gte=1"`
	CategoryID  int64               `json:"categoryId" validate:"gt=0"`
	Variants    []VariantDefinition `json:"variants,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	ProductName *string             `json:"productName,omitempty" validate:"omitempty,min=1"`
	Price       *float64            `json:"price,omitempty" validate:"omitempty,gt=0"`
	Quantity    *int                `json:"quantity,omitempty" validate:"omitempty,gte=1"`
	CategoryID  *int64              `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Variants    []VariantDefinition `json:"variants,omitempty" validate:"omitempty,dive"`
}

type CreateProductVariantRequest struct {
	ProductID int64   `json:"productId" validate:"gt=0"`
	Size      *string `json:"size,omitempty" validate:"omitempty,max=50"`
	Color     *string `json:"color,omitempty" validate:"omitempty,max=50"`
	Stock     int     `json:"stock" validate:"gte=0"`
}

type UpdateProductVariantRequest struct {
	ProductID *int64  `json:"productId,omitempty" validate:"omitempty,gt=0"`
	Size      *string `json:"size,omitempty" validate:"omitempty,max=50"`
	Color     *string `json:"color,omitempty" validate:"omitempty,max=50"`
	Stock     *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

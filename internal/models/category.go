package models

// Category groups products in the catalog.
type Category struct {
	CategoryID   int64   `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Description  *string `json:"description,omitempty"`
}

type CreateCategoryRequest struct {
	CategoryName string  `json:"categoryName" validate:"required"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type UpdateCategoryRequest struct {
	CategoryName *string `json:"categoryName,omitempty" validate:"omitempty,min=1"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

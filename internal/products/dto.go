package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description *string      `json:"description,omitempty"`
	Details     *string      `json:"details,omitempty"`
	PriceCents  int          `json:"price_cents"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Images      []string     `json:"images"`
	IsFeatured  bool         `json:"is_featured"`
	Stock       int          `json:"stock"`
	Category    *CategoryDTO `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CategoryDTO is the category payload returned to clients.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		Details:     product.Details,
		PriceCents:  product.PriceCents,
		ImageURL:    product.ImageURL,
		Images:      append([]string{}, product.Images...),
		IsFeatured:  product.IsFeatured,
		Stock:       product.Stock,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	if product.Category != nil {
		dto.Category = NewCategoryDTO(product.Category)
	}
	return dto
}

// NewCategoryDTO builds a DTO from the persisted model.
func NewCategoryDTO(category *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}
}

// ListFilters narrows the catalog browse query.
type ListFilters struct {
	CategorySlug  string
	Query         string
	MinPriceCents *int
	MaxPriceCents *int
	Sort          enums.SortOption
	FeaturedOnly  bool
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Slug        string
	Description *string
	Details     *string
	PriceCents  int
	ImageURL    *string
	Images      []string
	IsFeatured  bool
	Stock       int
	CategoryID  *uuid.UUID
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Slug        *string
	Description *string
	Details     *string
	PriceCents  *int
	ImageURL    *string
	Images      *[]string
	IsFeatured  *bool
	Stock       *int
	CategoryID  *uuid.UUID
}

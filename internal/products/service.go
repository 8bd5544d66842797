package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
)

const featuredLimit = 8

// Service exposes catalog read paths and admin product management.
type Service interface {
	Browse(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	GetBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	Featured(ctx context.Context) ([]ProductDTO, error)
	Categories(ctx context.Context) ([]CategoryDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, productID uuid.UUID) error
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filters ListFilters) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService builds the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

// Browse lists catalog products matching the provided filters.
func (s *service) Browse(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	if filters.MinPriceCents != nil && *filters.MinPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min price must be non-negative")
	}
	if filters.MaxPriceCents != nil && *filters.MaxPriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max price must be non-negative")
	}
	if filters.MinPriceCents != nil && filters.MaxPriceCents != nil && *filters.MinPriceCents > *filters.MaxPriceCents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min price cannot exceed max price")
	}

	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return toDTOs(rows), nil
}

// GetBySlug loads one product for the detail page.
func (s *service) GetBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return NewProductDTO(product), nil
}

// Featured lists the storefront's highlighted products.
func (s *service) Featured(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing featured products")
	}
	return toDTOs(rows), nil
}

// Categories lists all browse categories.
func (s *service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewCategoryDTO(&rows[i]))
	}
	return out, nil
}

// Create inserts a catalog product. Slug collisions surface as conflicts.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
		Details:     input.Details,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
		Images:      pq.StringArray(input.Images),
		IsFeatured:  input.IsFeatured,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return NewProductDTO(created), nil
}

// Update applies partial mutations to an existing product.
func (s *service) Update(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		if strings.TrimSpace(*input.Slug) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug cannot be empty")
		}
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Details != nil {
		product.Details = input.Details
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		product.PriceCents = *input.PriceCents
	}
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}
	if input.Images != nil {
		product.Images = pq.StringArray(*input.Images)
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
		}
		product.Stock = *input.Stock
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}

	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a product with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return NewProductDTO(updated), nil
}

// Delete removes a product from the catalog.
func (s *service) Delete(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}
	return nil
}

func validateCreateInput(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	if input.PriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return nil
}

func toDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}

package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a product with its category for the detail page.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "slug = ?", slug).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads the products matching the given ids, in no guaranteed order.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// List returns catalog products matching the browse filters.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category")

	if filters.CategorySlug != "" {
		qb = qb.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", pattern, pattern)
	}
	if filters.MinPriceCents != nil {
		qb = qb.Where("products.price_cents >= ?", *filters.MinPriceCents)
	}
	if filters.MaxPriceCents != nil {
		qb = qb.Where("products.price_cents <= ?", *filters.MaxPriceCents)
	}
	if filters.FeaturedOnly {
		qb = qb.Where("products.is_featured = ?", true)
	}

	switch filters.Sort {
	case enums.SortPriceLow:
		qb = qb.Order("products.price_cents ASC")
	case enums.SortPriceHigh:
		qb = qb.Order("products.price_cents DESC")
	case enums.SortName:
		qb = qb.Order("products.name ASC")
	default:
		qb = qb.Order("products.created_at DESC")
	}
	qb = qb.Order("products.id DESC")

	var rows []models.Product
	if err := qb.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListFeatured returns the featured products for the storefront home page.
func (r *Repository) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var rows []models.Product
	qb := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_featured = ?", true).
		Order("created_at DESC")
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	err := qb.Find(&rows).Error
	return rows, err
}

// ListCategories returns all categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

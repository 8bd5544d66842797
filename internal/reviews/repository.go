package reviews

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
)

// Repository persists product reviews.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateReview inserts a new review row.
func (r *Repository) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// FindByID loads one review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListApprovedByProduct returns the moderated reviews for a product page,
// newest first.
func (r *Repository) ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// ListPending returns reviews awaiting moderation, oldest first so the queue
// drains in submission order.
func (r *Repository) ListPending(ctx context.Context) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}

// Approve marks one review as publicly visible.
func (r *Repository) Approve(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_approved", true).
		Error
}

// Delete removes a review.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Review{}).
		Error
}

type statsRow struct {
	Average float64
	Count   int
}

// ApprovedStats aggregates rating average and count over approved reviews.
func (r *Repository) ApprovedStats(ctx context.Context, productID uuid.UUID) (float64, int, error) {
	var row statsRow
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Scan(&row).
		Error
	if err != nil {
		return 0, 0, err
	}
	return row.Average, row.Count, nil
}

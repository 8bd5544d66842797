package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
)

// ReviewDTO is the review payload returned to clients. Author email never
// leaves the service on public paths.
type ReviewDTO struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	AuthorName         string    `json:"author_name"`
	Rating             int       `json:"rating"`
	Title              *string   `json:"title,omitempty"`
	Content            *string   `json:"content,omitempty"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	IsApproved         bool      `json:"is_approved"`
	CreatedAt          time.Time `json:"created_at"`
}

// StatsDTO summarizes approved ratings for a product.
type StatsDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ProductReviewsDTO is the public review listing for a product page.
type ProductReviewsDTO struct {
	Reviews []ReviewDTO `json:"reviews"`
	Stats   StatsDTO    `json:"stats"`
}

// SubmitInput is a new review submission.
type SubmitInput struct {
	ProductID   uuid.UUID
	AuthorName  string
	AuthorEmail string
	Rating      int
	Title       *string
	Content     *string
}

// NewReviewDTO builds a DTO from the persisted model.
func NewReviewDTO(review *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		AuthorName:         review.AuthorName,
		Rating:             review.Rating,
		Title:              review.Title,
		Content:            review.Content,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		IsApproved:         review.IsApproved,
		CreatedAt:          review.CreatedAt,
	}
}

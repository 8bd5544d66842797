package reviews

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/auth"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

// Service exposes review submission, the public product listing, and the
// admin moderation queue.
type Service interface {
	Submit(ctx context.Context, input SubmitInput, identity *auth.Identity) (*ReviewDTO, error)
	ForProductSlug(ctx context.Context, slug string) (*ProductReviewsDTO, error)
	AdminPending(ctx context.Context) ([]ReviewDTO, error)
	AdminApprove(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error)
	AdminDelete(ctx context.Context, reviewID uuid.UUID) error
}

type repository interface {
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListApprovedByProduct(ctx context.Context, productID uuid.UUID) ([]models.Review, error)
	ListPending(ctx context.Context) ([]models.Review, error)
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ApprovedStats(ctx context.Context, productID uuid.UUID) (float64, int, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type purchaseCounter interface {
	CountPurchases(ctx context.Context, email string, productID uuid.UUID) (int64, error)
}

type service struct {
	repo      repository
	products  productLoader
	purchases purchaseCounter
	logg      *logger.Logger
}

// NewService builds the reviews service.
func NewService(repo repository, products productLoader, purchases purchaseCounter, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if purchases == nil {
		return nil, fmt.Errorf("purchase counter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		products:  products,
		purchases: purchases,
		logg:      logg,
	}, nil
}

// Submit stores a new review. It starts unapproved and only shows publicly
// after moderation. The verified purchase badge is derived from the
// submitter's order history at submission time.
func (s *service) Submit(ctx context.Context, input SubmitInput, identity *auth.Identity) (*ReviewDTO, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, input.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	// A failed lookup must not block the review, but it is not silent
	// either: the badge defaults to unverified and the failure is logged.
	verified := false
	count, err := s.purchases.CountPurchases(ctx, strings.TrimSpace(input.AuthorEmail), input.ProductID)
	if err != nil {
		warnCtx := s.logg.WithField(ctx, "product_id", input.ProductID.String())
		warnCtx = s.logg.WithField(warnCtx, "error", err.Error())
		s.logg.Warn(warnCtx, "failed to count purchases, review defaults to unverified")
	} else if count > 0 {
		verified = true
	}

	review := &models.Review{
		ProductID:          input.ProductID,
		AuthorName:         strings.TrimSpace(input.AuthorName),
		AuthorEmail:        strings.TrimSpace(input.AuthorEmail),
		Rating:             input.Rating,
		Title:              input.Title,
		Content:            input.Content,
		IsVerifiedPurchase: verified,
		IsApproved:         false,
	}
	if identity != nil && identity.UserID != uuid.Nil {
		userID := identity.UserID
		review.UserID = &userID
	}

	created, err := s.repo.CreateReview(ctx, review)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating review")
	}
	return NewReviewDTO(created), nil
}

// ForProductSlug returns the approved reviews and rating stats for a
// product page. The average is rounded to one decimal.
func (s *service) ForProductSlug(ctx context.Context, slug string) (*ProductReviewsDTO, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}

	product, err := s.products.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}

	rows, err := s.repo.ListApprovedByProduct(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing reviews")
	}
	average, count, err := s.repo.ApprovedStats(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregating review stats")
	}

	out := &ProductReviewsDTO{
		Reviews: make([]ReviewDTO, 0, len(rows)),
		Stats: StatsDTO{
			Average: math.Round(average*10) / 10,
			Count:   count,
		},
	}
	for i := range rows {
		out.Reviews = append(out.Reviews, *NewReviewDTO(&rows[i]))
	}
	return out, nil
}

// AdminPending lists the moderation queue.
func (s *service) AdminPending(ctx context.Context) ([]ReviewDTO, error) {
	rows, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing pending reviews")
	}
	out := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewReviewDTO(&rows[i]))
	}
	return out, nil
}

// AdminApprove publishes a review.
func (s *service) AdminApprove(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error) {
	review, err := s.loadReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !review.IsApproved {
		if err := s.repo.Approve(ctx, reviewID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approving review")
		}
		review.IsApproved = true
	}
	return NewReviewDTO(review), nil
}

// AdminDelete removes a review entirely.
func (s *service) AdminDelete(ctx context.Context, reviewID uuid.UUID) error {
	if _, err := s.loadReview(ctx, reviewID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting review")
	}
	return nil
}

func (s *service) loadReview(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	if reviewID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	review, err := s.repo.FindByID(ctx, reviewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading review")
	}
	return review, nil
}

func validateSubmitInput(input SubmitInput) error {
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(input.AuthorName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "author name is required")
	}
	email := strings.TrimSpace(input.AuthorEmail)
	if email == "" || !strings.Contains(email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid author email is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}

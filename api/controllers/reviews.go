package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/middleware"
	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/api/validators"
	"github.com/hearthside-goods/storefront-backend/internal/reviews"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

type submitReviewPayload struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	AuthorName  string    `json:"author_name" validate:"required"`
	AuthorEmail string    `json:"author_email" validate:"required,email"`
	Rating      int       `json:"rating" validate:"min=1,max=5"`
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
}

// ProductReviews returns the approved reviews and rating stats for a product.
func ProductReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		out, err := svc.ForProductSlug(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, out)
	}
}

// SubmitReview accepts a new review; it stays hidden until moderation.
func SubmitReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload submitReviewPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := svc.Submit(ctx, reviews.SubmitInput{
			ProductID:   payload.ProductID,
			AuthorName:  payload.AuthorName,
			AuthorEmail: payload.AuthorEmail,
			Rating:      payload.Rating,
			Title:       payload.Title,
			Content:     payload.Content,
		}, middleware.IdentityFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, review)
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/internal/reviews"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

// AdminReviewsPending lists the moderation queue, oldest first.
func AdminReviewsPending(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.AdminPending(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"reviews": rows})
	}
}

// AdminReviewApprove publishes a pending review.
func AdminReviewApprove(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reviewID, err := parseReviewID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		review, err := svc.AdminApprove(ctx, reviewID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

// AdminReviewDelete removes a review entirely.
func AdminReviewDelete(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		reviewID, err := parseReviewID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.AdminDelete(ctx, reviewID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func parseReviewID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "reviewId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	reviewID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid review id")
	}
	return reviewID, nil
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/api/validators"
	"github.com/hearthside-goods/storefront-backend/internal/products"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

type createProductPayload struct {
	Name        string     `json:"name" validate:"required"`
	Slug        string     `json:"slug" validate:"required"`
	Description *string    `json:"description"`
	Details     *string    `json:"details"`
	PriceCents  int        `json:"price_cents" validate:"min=0"`
	ImageURL    *string    `json:"image_url"`
	Images      []string   `json:"images"`
	IsFeatured  bool       `json:"is_featured"`
	Stock       int        `json:"stock" validate:"min=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type updateProductPayload struct {
	Name        *string    `json:"name"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Details     *string    `json:"details"`
	PriceCents  *int       `json:"price_cents"`
	ImageURL    *string    `json:"image_url"`
	Images      *[]string  `json:"images"`
	IsFeatured  *bool      `json:"is_featured"`
	Stock       *int       `json:"stock"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// AdminProductsList returns the catalog with the same filters as the public
// browse surface.
func AdminProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.Browse(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

// AdminProductCreate inserts a new catalog product.
func AdminProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload createProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Create(ctx, products.CreateProductInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			Details:     payload.Details,
			PriceCents:  payload.PriceCents,
			ImageURL:    payload.ImageURL,
			Images:      payload.Images,
			IsFeatured:  payload.IsFeatured,
			Stock:       payload.Stock,
			CategoryID:  payload.CategoryID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminProductUpdate applies partial mutations to a product.
func AdminProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := parseAdminProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProductPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Update(ctx, productID, products.UpdateProductInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			Details:     payload.Details,
			PriceCents:  payload.PriceCents,
			ImageURL:    payload.ImageURL,
			Images:      payload.Images,
			IsFeatured:  payload.IsFeatured,
			Stock:       payload.Stock,
			CategoryID:  payload.CategoryID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := parseAdminProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, productID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

func parseAdminProductID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "productId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	productID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
	}
	return productID, nil
}

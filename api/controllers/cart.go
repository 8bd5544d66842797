package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/middleware"
	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/api/validators"
	"github.com/hearthside-goods/storefront-backend/internal/cart"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

type addCartItemPayload struct {
	ProductID  uuid.UUID `json:"productId" validate:"required"`
	Name       string    `json:"name" validate:"required"`
	Slug       string    `json:"slug"`
	PriceCents int       `json:"priceCents" validate:"min=0"`
	Quantity   int       `json:"quantity" validate:"min=1"`
	ImageURL   *string   `json:"imageUrl"`
}

type updateCartItemPayload struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	SessionID     string      `json:"sessionId"`
	Items         []cart.Item `json:"items"`
	SubtotalCents int         `json:"subtotalCents"`
	ItemCount     int         `json:"itemCount"`
}

func newCartResponse(c *cart.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return cartResponse{
		SessionID:     c.SessionID,
		Items:         items,
		SubtotalCents: c.SubtotalCents(),
		ItemCount:     c.ItemCount(),
	}
}

// CartFetch returns the session cart with its derived totals.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		c, err := svc.Get(ctx, middleware.CartSessionFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartAddItem adds a catalog snapshot line, merging quantities on repeats.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := svc.AddItem(ctx, middleware.CartSessionFromContext(ctx), cart.Item{
			ProductID:  payload.ProductID,
			Name:       payload.Name,
			Slug:       payload.Slug,
			PriceCents: payload.PriceCents,
			Quantity:   payload.Quantity,
			ImageURL:   payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartUpdateItem sets the quantity on one line; below 1 removes the line.
func CartUpdateItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := parseCartProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := svc.UpdateQuantity(ctx, middleware.CartSessionFromContext(ctx), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartRemoveItem deletes one line from the session cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID, err := parseCartProductID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := svc.RemoveItem(ctx, middleware.CartSessionFromContext(ctx), productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(c))
	}
}

// CartClear empties the session cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Clear(ctx, middleware.CartSessionFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"cleared": true})
	}
}

func parseCartProductID(r *http.Request) (uuid.UUID, error) {
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

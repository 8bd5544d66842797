package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/middleware"
	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/api/validators"
	"github.com/hearthside-goods/storefront-backend/internal/cart"
	"github.com/hearthside-goods/storefront-backend/internal/checkout"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

type checkoutItemPayload struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int       `json:"price"`
	Quantity int       `json:"quantity"`
	ImageURL *string   `json:"image_url"`
	Slug     string    `json:"slug"`
}

type checkoutShippingPayload struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

type checkoutPayload struct {
	Items        []checkoutItemPayload   `json:"items"`
	Shipping     checkoutShippingPayload `json:"shipping"`
	Subtotal     int                     `json:"subtotal"`
	ShippingCost int                     `json:"shippingCost"`
	Tax          int                     `json:"tax"`
	Total        int                     `json:"total"`
}

type checkoutResponse struct {
	Success bool      `json:"success"`
	OrderID uuid.UUID `json:"orderId"`
}

// Checkout turns a submitted cart into an order. On success the shopper's
// session cart, when one accompanied the request, is cleared.
func Checkout(svc checkout.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := checkout.SubmitInput{
			Shipping: checkout.ShippingInfo{
				Email:   payload.Shipping.Email,
				Name:    payload.Shipping.Name,
				Address: payload.Shipping.Address,
				City:    payload.Shipping.City,
				State:   payload.Shipping.State,
				Zip:     payload.Shipping.Zip,
			},
			SubtotalCents:     payload.Subtotal,
			ShippingCostCents: payload.ShippingCost,
			TaxCents:          payload.Tax,
			TotalCents:        payload.Total,
		}
		for _, item := range payload.Items {
			input.Items = append(input.Items, checkout.ItemInput{
				ProductID:  item.ID,
				Name:       item.Name,
				PriceCents: item.Price,
				Quantity:   item.Quantity,
			})
		}

		result, err := svc.Submit(ctx, input, middleware.IdentityFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if sessionID := middleware.CartSessionFromContext(ctx); sessionID != "" && cartSvc != nil {
			if err := cartSvc.Clear(ctx, sessionID); err != nil && logg != nil {
				logg.Warn(logg.WithCartSession(ctx, sessionID), "failed to clear cart after checkout")
			}
		}

		responses.WriteSuccess(w, checkoutResponse{Success: true, OrderID: result.OrderID})
	}
}

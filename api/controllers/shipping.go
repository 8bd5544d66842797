package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/internal/pricing"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

type shippingRateDTO struct {
	Speed      string `json:"speed"`
	Method     string `json:"method"`
	PriceCents int    `json:"price_cents"`
	Days       string `json:"days"`
}

type shippingQuoteResponse struct {
	SubtotalCents int               `json:"subtotal_cents"`
	State         string            `json:"state"`
	TaxCents      int               `json:"tax_cents"`
	Rates         []shippingRateDTO `json:"rates"`
}

// ShippingRates quotes both delivery speeds for a subtotal and destination.
func ShippingRates(calc *pricing.Calculator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rawSubtotal := strings.TrimSpace(r.URL.Query().Get("subtotal"))
		subtotal, err := strconv.Atoi(rawSubtotal)
		if err != nil || subtotal < 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must be a non-negative integer of cents"))
			return
		}

		state := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("state")))
		if state == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "state is required"))
			return
		}

		rates := calc.Quote(subtotal, state)
		out := shippingQuoteResponse{
			SubtotalCents: subtotal,
			State:         state,
			TaxCents:      calc.TaxCents(subtotal),
			Rates:         make([]shippingRateDTO, 0, len(rates)),
		}
		for _, rate := range rates {
			out.Rates = append(out.Rates, shippingRateDTO{
				Speed:      rate.Speed.String(),
				Method:     rate.Method,
				PriceCents: rate.PriceCents,
				Days:       rate.Days,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

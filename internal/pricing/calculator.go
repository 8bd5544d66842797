package pricing

import (
	"github.com/hearthside-goods/storefront-backend/pkg/config"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
)

// Banded shipping rates in cents, keyed by subtotal range.
const (
	midBandThresholdCents = 2500

	lowBandStandardCents = 599
	lowBandExpressCents  = 1299
	midBandStandardCents = 499
	midBandExpressCents  = 1099
	freeBandExpressCents = 899

	basisPointScale = 10000
)

// remoteStates carry a flat surcharge on paid shipping rates.
var remoteStates = map[string]struct{}{
	"AK": {},
	"HI": {},
}

// Breakdown is the derived money view of a cart at a destination. All fields
// are integer cents and Total is always exactly Subtotal+Shipping+Tax.
type Breakdown struct {
	SubtotalCents int
	ShippingCents int
	TaxCents      int
	TotalCents    int
}

// Rate is a single shipping option offered at quote time.
type Rate struct {
	Speed      enums.DeliverySpeed
	Method     string
	PriceCents int
	Days       string
}

// Calculator computes shipping, tax and totals. It is pure: no I/O, no
// clock, identical inputs always produce identical outputs.
type Calculator struct {
	freeThresholdCents   int
	remoteSurchargeCents int
	taxRateBasisPoints   int
}

// NewCalculator builds a calculator from the shipping and tax configuration.
func NewCalculator(shipping config.ShippingConfig, tax config.TaxConfig) *Calculator {
	return &Calculator{
		freeThresholdCents:   shipping.FreeThresholdCents,
		remoteSurchargeCents: shipping.RemoteSurchargeCents,
		taxRateBasisPoints:   tax.RateBasisPoints,
	}
}

// IsRemote reports whether the destination state carries the remote surcharge.
func IsRemote(state string) bool {
	_, ok := remoteStates[state]
	return ok
}

// FreeThresholdCents exposes the configured free-shipping boundary.
func (c *Calculator) FreeThresholdCents() int {
	return c.freeThresholdCents
}

// ShippingCents returns the shipping cost for a subtotal, destination state
// and delivery speed. Standard shipping is free at or above the threshold,
// including remote destinations.
func (c *Calculator) ShippingCents(subtotalCents int, state string, speed enums.DeliverySpeed) int {
	// Nothing to ship. Empty carts are rejected upstream, this keeps the
	// function total.
	if subtotalCents <= 0 {
		return 0
	}

	surcharge := 0
	if IsRemote(state) {
		surcharge = c.remoteSurchargeCents
	}

	switch {
	case subtotalCents >= c.freeThresholdCents:
		if speed == enums.DeliverySpeedExpress {
			return freeBandExpressCents + surcharge
		}
		return 0
	case subtotalCents >= midBandThresholdCents:
		if speed == enums.DeliverySpeedExpress {
			return midBandExpressCents + surcharge
		}
		return midBandStandardCents + surcharge
	default:
		if speed == enums.DeliverySpeedExpress {
			return lowBandExpressCents + surcharge
		}
		return lowBandStandardCents + surcharge
	}
}

// TaxCents applies the configured rate with round-half-up on integer cents.
func (c *Calculator) TaxCents(subtotalCents int) int {
	if subtotalCents <= 0 {
		return 0
	}
	return (subtotalCents*c.taxRateBasisPoints + basisPointScale/2) / basisPointScale
}

// Compute builds the full breakdown for one cart at one destination.
func (c *Calculator) Compute(subtotalCents int, state string, speed enums.DeliverySpeed) Breakdown {
	shipping := c.ShippingCents(subtotalCents, state, speed)
	tax := c.TaxCents(subtotalCents)
	return Breakdown{
		SubtotalCents: subtotalCents,
		ShippingCents: shipping,
		TaxCents:      tax,
		TotalCents:    subtotalCents + shipping + tax,
	}
}

// Quote returns both delivery options with their transit estimates, the way
// the storefront presents them before checkout.
func (c *Calculator) Quote(subtotalCents int, state string) []Rate {
	standardDays := "5-7 business days"
	expressDays := "2-3 business days"
	if IsRemote(state) {
		standardDays = "7-10 business days"
		expressDays = "3-5 business days"
	}

	return []Rate{
		{
			Speed:      enums.DeliverySpeedStandard,
			Method:     "Standard Shipping",
			PriceCents: c.ShippingCents(subtotalCents, state, enums.DeliverySpeedStandard),
			Days:       standardDays,
		},
		{
			Speed:      enums.DeliverySpeedExpress,
			Method:     "Express Shipping",
			PriceCents: c.ShippingCents(subtotalCents, state, enums.DeliverySpeedExpress),
			Days:       expressDays,
		},
	}
}

package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
)

// OrderDTO is the order payload returned to buyers and admins.
type OrderDTO struct {
	ID                uuid.UUID         `json:"id"`
	UserID            *uuid.UUID        `json:"user_id,omitempty"`
	Status            enums.OrderStatus `json:"status"`
	Email             string            `json:"email"`
	ShippingName      string            `json:"shipping_name"`
	ShippingAddress   string            `json:"shipping_address"`
	ShippingCity      string            `json:"shipping_city"`
	ShippingState     string            `json:"shipping_state"`
	ShippingZip       string            `json:"shipping_zip"`
	SubtotalCents     int               `json:"subtotal_cents"`
	ShippingCostCents int               `json:"shipping_cost_cents"`
	TaxCents          int               `json:"tax_cents"`
	TotalCents        int               `json:"total_cents"`
	Items             []OrderItemDTO    `json:"items"`
	CreatedAt         time.Time         `json:"created_at"`
}

// OrderItemDTO is one immutable line of a placed order.
type OrderItemDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int       `json:"unit_price_cents"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                order.ID,
		UserID:            order.UserID,
		Status:            order.Status,
		Email:             order.Email,
		ShippingName:      order.ShippingName,
		ShippingAddress:   order.ShippingAddress,
		ShippingCity:      order.ShippingCity,
		ShippingState:     order.ShippingState,
		ShippingZip:       order.ShippingZip,
		SubtotalCents:     order.SubtotalCents,
		ShippingCostCents: order.ShippingCostCents,
		TaxCents:          order.TaxCents,
		TotalCents:        order.TotalCents,
		CreatedAt:         order.CreatedAt,
	}
	dto.Items = make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return dto
}

// OrderListResult is one page of admin order history.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/pkg/enums"
)

// Order is the header row created by checkout. The shipping snapshot and
// totals are captured at submission time; UserID stays nil for guest orders.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID            *uuid.UUID        `gorm:"column:user_id;type:uuid"`
	Status            enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	Email             string            `gorm:"column:email;not null"`
	ShippingName      string            `gorm:"column:shipping_name;not null"`
	ShippingAddress   string            `gorm:"column:shipping_address;not null"`
	ShippingCity      string            `gorm:"column:shipping_city;not null"`
	ShippingState     string            `gorm:"column:shipping_state;not null"`
	ShippingZip       string            `gorm:"column:shipping_zip;not null"`
	SubtotalCents     int               `gorm:"column:subtotal_cents;not null"`
	ShippingCostCents int               `gorm:"column:shipping_cost_cents;not null"`
	TaxCents          int               `gorm:"column:tax_cents;not null"`
	TotalCents        int               `gorm:"column:total_cents;not null"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

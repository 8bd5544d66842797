package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog listing.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Slug        string         `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Description *string        `gorm:"column:description"`
	Details     *string        `gorm:"column:details"`
	PriceCents  int            `gorm:"column:price_cents;not null"`
	ImageURL    *string        `gorm:"column:image_url"`
	Images      pq.StringArray `gorm:"column:images;type:text[]"`
	IsFeatured  bool           `gorm:"column:is_featured;not null;default:false"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	CategoryID  *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Category    *Category      `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

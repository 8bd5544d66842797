package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// ItemDTO is one saved product with its catalog snapshot.
type ItemDTO struct {
	WishlistID uuid.UUID `json:"wishlist_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	PriceCents int       `json:"price_cents"`
	ImageURL   *string   `json:"image_url,omitempty"`
	Stock      int       `json:"stock"`
	AddedAt    time.Time `json:"added_at"`
}

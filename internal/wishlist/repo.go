package wishlist

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (id, user_id, product_id) VALUES (?, ?, ?) ON CONFLICT (user_id, product_id) DO NOTHING`,
			uuid.New(), userID, productID).
		Error
}

// RemoveItem deletes the user-product link if it exists.
func (r *Repository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

type wishlistRow struct {
	WishlistID uuid.UUID
	ProductID  uuid.UUID
	Name       string
	Slug       string
	PriceCents int
	ImageURL   sql.NullString
	Stock      int
	AddedAt    time.Time
}

// ListItems returns the user's saved products with their catalog snapshots,
// newest first.
func (r *Repository) ListItems(ctx context.Context, userID uuid.UUID) ([]ItemDTO, error) {
	var rows []wishlistRow
	err := r.db.WithContext(ctx).
		Table("wishlist_items wi").
		Select("wi.id AS wishlist_id, wi.created_at AS added_at, p.id AS product_id, p.name, p.slug, p.price_cents, p.image_url, p.stock").
		Joins("JOIN products p ON p.id = wi.product_id").
		Where("wi.user_id = ?", userID).
		Order("wi.created_at DESC").
		Order("wi.id DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]ItemDTO, 0, len(rows))
	for _, row := range rows {
		item := ItemDTO{
			WishlistID: row.WishlistID,
			ProductID:  row.ProductID,
			Name:       row.Name,
			Slug:       row.Slug,
			PriceCents: row.PriceCents,
			Stock:      row.Stock,
			AddedAt:    row.AddedAt,
		}
		if row.ImageURL.Valid {
			v := row.ImageURL.String
			item.ImageURL = &v
		}
		items = append(items, item)
	}
	return items, nil
}

// ListProductIDs returns the bare product ids in the user's wishlist. The
// storefront uses this to mark saved products while browsing.
func (r *Repository) ListProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("product_id", &ids).
		Error
	return ids, err
}

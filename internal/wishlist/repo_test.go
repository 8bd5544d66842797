package wishlist

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
)

func setupWishlistTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:wishlist_%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  details TEXT,
  price_cents INTEGER NOT NULL,
  image_url TEXT,
  images TEXT,
  is_featured INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0,
  category_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	wishlistItems := `
CREATE TABLE IF NOT EXISTS wishlist_items (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  UNIQUE (user_id, product_id)
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(wishlistItems).Error)
	return conn
}

func mustCreateProduct(t *testing.T, conn *gorm.DB, name string) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		Slug:       fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		PriceCents: 1800,
		Stock:      5,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestAddItemIgnoresDuplicates(t *testing.T) {
	conn := setupWishlistTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateProduct(t, conn, "cedar-candle")

	require.NoError(t, repo.AddItem(ctx, userID, product.ID))
	require.NoError(t, repo.AddItem(ctx, userID, product.ID))

	ids, err := repo.ListProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestListItemsJoinsProductSnapshot(t *testing.T) {
	conn := setupWishlistTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateProduct(t, conn, "wool-throw")
	require.NoError(t, repo.AddItem(ctx, userID, product.ID))

	items, err := repo.ListItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, "wool-throw", items[0].Name)
	assert.Equal(t, 1800, items[0].PriceCents)
	assert.Equal(t, 5, items[0].Stock)
}

func TestRemoveItem(t *testing.T) {
	conn := setupWishlistTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	userID := uuid.New()
	product := mustCreateProduct(t, conn, "walnut-board")
	require.NoError(t, repo.AddItem(ctx, userID, product.ID))
	require.NoError(t, repo.RemoveItem(ctx, userID, product.ID))

	ids, err := repo.ListProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	// removing again is a no-op
	require.NoError(t, repo.RemoveItem(ctx, userID, product.ID))
}

func TestWishlistsAreIsolatedByUser(t *testing.T) {
	conn := setupWishlistTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := mustCreateProduct(t, conn, "shared-product")
	first := uuid.New()
	second := uuid.New()
	require.NoError(t, repo.AddItem(ctx, first, product.ID))

	ids, err := repo.ListProductIDs(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

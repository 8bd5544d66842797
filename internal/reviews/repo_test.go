package reviews

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

func setupReviewsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:reviews_%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{})
	require.NoError(t, err)

	reviews := `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  user_id TEXT,
  author_name TEXT NOT NULL,
  author_email TEXT NOT NULL,
  rating INTEGER NOT NULL,
  title TEXT,
  content TEXT,
  is_verified_purchase INTEGER NOT NULL DEFAULT 0,
  is_approved INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(reviews).Error)
	return conn
}

func mustCreateReview(t *testing.T, repo *Repository, productID uuid.UUID, rating int, approved bool) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:          uuid.New(),
		ProductID:   productID,
		AuthorName:  "Quinn Harper",
		AuthorEmail: "quinn@example.com",
		Rating:      rating,
		IsApproved:  approved,
	}
	created, err := repo.CreateReview(context.Background(), review)
	require.NoError(t, err)
	return created
}

func TestListApprovedByProductFiltersPending(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	productID := uuid.New()
	approved := mustCreateReview(t, repo, productID, 5, true)
	mustCreateReview(t, repo, productID, 1, false)
	mustCreateReview(t, repo, uuid.New(), 3, true)

	rows, err := repo.ListApprovedByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, approved.ID, rows[0].ID)
}

func TestApprovedStatsAggregatesApprovedOnly(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	productID := uuid.New()
	mustCreateReview(t, repo, productID, 5, true)
	mustCreateReview(t, repo, productID, 4, true)
	mustCreateReview(t, repo, productID, 1, false)

	average, count, err := repo.ApprovedStats(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 4.5, average, 0.001)
}

func TestApprovedStatsEmptyProduct(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)

	average, count, err := repo.ApprovedStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, average)
}

func TestApprovePublishes(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	review := mustCreateReview(t, repo, uuid.New(), 4, false)
	require.NoError(t, repo.Approve(ctx, review.ID))

	loaded, err := repo.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsApproved)
}

func TestDeleteRemovesRow(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	review := mustCreateReview(t, repo, uuid.New(), 4, false)
	require.NoError(t, repo.Delete(ctx, review.ID))

	_, err := repo.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListPendingOldestFirst(t *testing.T) {
	conn := setupReviewsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := mustCreateReview(t, repo, uuid.New(), 2, false)
	second := mustCreateReview(t, repo, uuid.New(), 3, false)
	mustCreateReview(t, repo, uuid.New(), 5, true)

	rows, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, first.ID, rows[0].ID)
	assert.Equal(t, second.ID, rows[1].ID)
}

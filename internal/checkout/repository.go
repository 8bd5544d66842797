package checkout

import (
	"context"

	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/internal/orders"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
)

// Repository is the write surface checkout needs: the order header and its
// line items, both bindable to one transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

type repository struct {
	orders *orders.Repository
}

// NewRepository builds the checkout write surface over the shared DB handle.
func NewRepository(db *gorm.DB) Repository {
	return &repository{orders: orders.NewRepository(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{orders: r.orders.WithTx(tx)}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	return r.orders.CreateOrder(ctx, order)
}

func (r *repository) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	return r.orders.CreateOrderItems(ctx, items)
}

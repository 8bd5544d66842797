package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/auth"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/pagination"
)

// Service exposes order read paths and admin status management.
type Service interface {
	GetOrder(ctx context.Context, orderID uuid.UUID, identity *auth.Identity) (*OrderDTO, error)
	ListForIdentity(ctx context.Context, identity auth.Identity) ([]OrderDTO, error)
	AdminList(ctx context.Context, params pagination.Params) (*OrderListResult, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, params pagination.Params) ([]models.Order, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
}

type service struct {
	repo repository
}

// NewService builds the orders service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// GetOrder loads one order. Guest orders are addressable by id alone; orders
// tied to an account require the owning identity or an admin.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID, identity *auth.Identity) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	if order.UserID != nil {
		allowed := identity != nil && (identity.IsAdmin() || identity.UserID == *order.UserID)
		if !allowed {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another account")
		}
	}

	return NewOrderDTO(order), nil
}

// ListForIdentity returns the buyer's order history.
func (s *service) ListForIdentity(ctx context.Context, identity auth.Identity) ([]OrderDTO, error) {
	if identity.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to view order history")
	}

	rows, err := s.repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return toDTOs(rows), nil
}

// AdminList returns one page of all orders.
func (s *service) AdminList(ctx context.Context, params pagination.Params) (*OrderListResult, error) {
	rows, nextCursor, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return &OrderListResult{
		Orders:     toDTOs(rows),
		NextCursor: nextCursor,
	}, nil
}

// AdminUpdateStatus moves an order through its lifecycle. Terminal orders
// (delivered, cancelled) stay where they are.
func (s *service) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}

	if order.Status.IsTerminal() && order.Status != status {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("order is already %s and cannot change status", order.Status))
	}

	if order.Status != status {
		if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
		}
		order.Status = status
	}
	return NewOrderDTO(order), nil
}

func toDTOs(rows []models.Order) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOrderDTO(&rows[i]))
	}
	return out
}

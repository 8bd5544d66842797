package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/internal/orders"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
)

// Detail pairs a customer summary with their full order history.
type Detail struct {
	Customer Summary           `json:"customer"`
	Orders   []orders.OrderDTO `json:"orders"`
}

// Service exposes the admin customer views. Customers are not stored
// directly; every view is an aggregation over orders.
type Service interface {
	List(ctx context.Context) ([]Summary, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*Detail, error)
	GetGuest(ctx context.Context, email string) (*Detail, error)
}

type repository interface {
	ListSummaries(ctx context.Context) ([]Summary, error)
	SummaryByUser(ctx context.Context, userID uuid.UUID) (*Summary, error)
	SummaryByGuestEmail(ctx context.Context, email string) (*Summary, error)
}

type orderHistory interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	ListByEmail(ctx context.Context, email string) ([]models.Order, error)
}

type service struct {
	repo    repository
	history orderHistory
}

// NewService builds the customers service.
func NewService(repo repository, history orderHistory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if history == nil {
		return nil, fmt.Errorf("order history required")
	}
	return &service{repo: repo, history: history}, nil
}

// List returns every customer known from order history, most recently
// active first.
func (s *service) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customers")
	}
	return rows, nil
}

// GetByUser returns one registered buyer and their orders.
func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (*Detail, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	summary, err := s.repo.SummaryByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}

	history, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer orders")
	}
	return &Detail{Customer: *summary, Orders: toOrderDTOs(history)}, nil
}

// GetGuest returns the guest checkouts grouped under one email address.
func (s *service) GetGuest(ctx context.Context, email string) (*Detail, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	summary, err := s.repo.SummaryByGuestEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}

	history, err := s.history.ListByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer orders")
	}
	return &Detail{Customer: *summary, Orders: toOrderDTOs(history)}, nil
}

func toOrderDTOs(rows []models.Order) []orders.OrderDTO {
	out := make([]orders.OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *orders.NewOrderDTO(&rows[i]))
	}
	return out
}

package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

// Service exposes session cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, item Item) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	mu sync.Mutex
	// retained holds only carts whose last storage write or delete failed.
	// Those stay authoritative until persistence recovers; every other cart
	// rests in storage, so idle sessions hold no process memory.
	retained map[string]*Cart
	storage  Storage
	logg     *logger.Logger
}

// NewService builds the cart service. Storage is the resting copy of every
// cart; memory retains a cart only while its snapshot cannot be persisted.
func NewService(storage Storage, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		retained: map[string]*Cart{},
		storage:  storage,
		logg:     logg,
	}, nil
}

// Get returns the session cart.
func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, sessionID).clone(), nil
}

// AddItem appends a line, merging quantities when the product is already in
// the cart.
func (s *service) AddItem(ctx context.Context, sessionID string, item Item) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}
	if item.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if item.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if item.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.loadLocked(ctx, sessionID)
	if i := c.findItem(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}

	s.persistLocked(ctx, c)
	return c.clone(), nil
}

// UpdateQuantity sets the quantity for one line. A quantity below 1 removes
// the line entirely.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.loadLocked(ctx, sessionID)
	i := c.findItem(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}

	if quantity < 1 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = quantity
	}

	s.persistLocked(ctx, c)
	return c.clone(), nil
}

// RemoveItem deletes one line from the cart.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.loadLocked(ctx, sessionID)
	i := c.findItem(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	s.persistLocked(ctx, c)
	return c.clone(), nil
}

// Clear empties the session cart and drops the stored snapshot. When the
// snapshot delete fails, an empty cart is retained in memory so the stale
// snapshot cannot rehydrate a cart that was already cleared.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.retained, sessionID)
	if err := s.storage.Delete(ctx, sessionID); err != nil {
		s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "failed to delete stored cart snapshot")
		s.retained[sessionID] = &Cart{SessionID: sessionID}
	}
	return nil
}

// loadLocked returns the session cart: the retained copy when one exists,
// otherwise a hydration from storage. Storage read failures fall back to an
// empty cart. Bare reads never retain, only persistLocked and Clear do.
func (s *service) loadLocked(ctx context.Context, sessionID string) *Cart {
	if c, ok := s.retained[sessionID]; ok {
		return c
	}

	c := &Cart{SessionID: sessionID}
	items, found, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "failed to load stored cart snapshot")
	} else if found {
		c.Items = items
	}
	return c
}

// persistLocked writes the snapshot behind the cart. On failure the cart is
// retained in memory and stays authoritative for the session; on success the
// snapshot is the resting copy and any retained entry is released.
func (s *service) persistLocked(ctx context.Context, c *Cart) {
	if err := s.storage.Save(ctx, c.SessionID, c.Items); err != nil {
		s.logg.Warn(s.logg.WithCartSession(ctx, c.SessionID), "failed to persist cart snapshot")
		s.retained[c.SessionID] = c
		return
	}
	delete(s.retained, c.SessionID)
}

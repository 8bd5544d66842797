package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
)

type stubWishlistRepo struct {
	added   map[uuid.UUID][]uuid.UUID
	removed int
}

func (s *stubWishlistRepo) AddItem(_ context.Context, userID, productID uuid.UUID) error {
	if s.added == nil {
		s.added = map[uuid.UUID][]uuid.UUID{}
	}
	s.added[userID] = append(s.added[userID], productID)
	return nil
}

func (s *stubWishlistRepo) RemoveItem(context.Context, uuid.UUID, uuid.UUID) error {
	s.removed++
	return nil
}

func (s *stubWishlistRepo) ListItems(context.Context, uuid.UUID) ([]ItemDTO, error) {
	return nil, nil
}

func (s *stubWishlistRepo) ListProductIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.added[userID], nil
}

type stubProductLoader struct {
	known map[uuid.UUID]bool
}

func (s *stubProductLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if s.known[id] {
		return &models.Product{ID: id}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestAddRequiresIdentity(t *testing.T) {
	svc, err := NewService(&stubWishlistRepo{}, &stubProductLoader{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	err = svc.Add(context.Background(), uuid.Nil, uuid.New())
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestAddUnknownProduct(t *testing.T) {
	svc, _ := NewService(&stubWishlistRepo{}, &stubProductLoader{})

	err := svc.Add(context.Background(), uuid.New(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestAddKnownProduct(t *testing.T) {
	productID := uuid.New()
	repo := &stubWishlistRepo{}
	svc, _ := NewService(repo, &stubProductLoader{known: map[uuid.UUID]bool{productID: true}})

	userID := uuid.New()
	if err := svc.Add(context.Background(), userID, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(repo.added[userID]) != 1 {
		t.Fatal("expected repo write")
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	repo := &stubWishlistRepo{}
	svc, _ := NewService(repo, &stubProductLoader{})

	if err := svc.Remove(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if repo.removed != 1 {
		t.Fatal("expected repo delete call")
	}
}

func TestListRequiresIdentity(t *testing.T) {
	svc, _ := NewService(&stubWishlistRepo{}, &stubProductLoader{})

	_, err := svc.List(context.Background(), uuid.Nil)
	expectCode(t, err, pkgerrors.CodeUnauthorized)

	_, err = svc.ListIDs(context.Background(), uuid.Nil)
	expectCode(t, err, pkgerrors.CodeUnauthorized)
}

package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
)

type stubCatalogRepo struct {
	products   map[uuid.UUID]*models.Product
	findBySlug func(ctx context.Context, slug string) (*models.Product, error)
	list       func(ctx context.Context, filters ListFilters) ([]models.Product, error)
	create     func(ctx context.Context, product *models.Product) (*models.Product, error)
}

func (s *stubCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s.findBySlug != nil {
		return s.findBySlug(ctx, slug)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogRepo) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	if s.list != nil {
		return s.list(ctx, filters)
	}
	return nil, nil
}

func (s *stubCatalogRepo) ListFeatured(context.Context, int) ([]models.Product, error) {
	return nil, nil
}

func (s *stubCatalogRepo) ListCategories(context.Context) ([]models.Category, error) {
	return nil, nil
}

func (s *stubCatalogRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if s.create != nil {
		return s.create(ctx, product)
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if s.products == nil {
		s.products = map[uuid.UUID]*models.Product{}
	}
	s.products[product.ID] = product
	return product, nil
}

func (s *stubCatalogRepo) UpdateProduct(_ context.Context, product *models.Product) (*models.Product, error) {
	s.products[product.ID] = product
	return product, nil
}

func (s *stubCatalogRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	return nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected *pkgerrors.Error, got %v", err)
	}
	if appErr.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code(), err)
	}
}

func TestBrowseRejectsInvertedPriceRange(t *testing.T) {
	svc, err := NewService(&stubCatalogRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	min := 5000
	max := 1000
	_, err = svc.Browse(context.Background(), ListFilters{MinPriceCents: &min, MaxPriceCents: &max})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestGetBySlugMapsNotFound(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	_, err := svc.GetBySlug(context.Background(), "missing")
	expectCode(t, err, pkgerrors.CodeNotFound)

	_, err = svc.GetBySlug(context.Background(), "  ")
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestGetBySlugWrapsRepositoryFailure(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{
		findBySlug: func(context.Context, string) (*models.Product, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := svc.GetBySlug(context.Background(), "cedar-candle")
	expectCode(t, err, pkgerrors.CodeDependency)
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{Slug: "x", PriceCents: 100})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateProductInput{Name: "x", PriceCents: 100})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, CreateProductInput{Name: "x", Slug: "x", PriceCents: -1})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateMapsSlugConflict(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{
		create: func(context.Context, *models.Product) (*models.Product, error) {
			return nil, errors.New(`duplicate key value violates unique constraint "products_slug_key"`)
		},
	})

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "x", Slug: "x", PriceCents: 100})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestUpdateAppliesPartialMutation(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc, _ := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{Name: "Cedar Candle", Slug: "cedar-candle", PriceCents: 1800, Stock: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := 2100
	updated, err := svc.Update(ctx, created.ID, UpdateProductInput{PriceCents: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 2100 {
		t.Fatalf("expected price 2100, got %d", updated.PriceCents)
	}
	if updated.Name != "Cedar Candle" {
		t.Fatalf("expected untouched name, got %q", updated.Name)
	}
}

func TestUpdateMissingProduct(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	name := "new name"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc, _ := NewService(&stubCatalogRepo{})

	err := svc.Delete(context.Background(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

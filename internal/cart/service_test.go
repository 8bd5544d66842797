package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

type failingStorage struct {
	loaded []Item
}

func (f *failingStorage) Save(context.Context, string, []Item) error {
	return errors.New("storage down")
}

func (f *failingStorage) Load(context.Context, string) ([]Item, bool, error) {
	if f.loaded != nil {
		return f.loaded, true, nil
	}
	return nil, false, errors.New("storage down")
}

func (f *failingStorage) Delete(context.Context, string) error {
	return errors.New("storage down")
}

func newTestService(t *testing.T, storage Storage) Service {
	t.Helper()
	svc, err := NewService(storage, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func testItem(quantity int) Item {
	return Item{
		ProductID:  uuid.New(),
		Name:       "Cedar Candle",
		Slug:       "cedar-candle",
		PriceCents: 1800,
		Quantity:   quantity,
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()
	item := testItem(2)

	if _, err := svc.AddItem(ctx, "sess-1", item); err != nil {
		t.Fatalf("first add: %v", err)
	}
	item.Quantity = 3
	c, err := svc.AddItem(ctx, "sess-1", item)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", c.Items[0].Quantity)
	}
	if c.SubtotalCents() != 9000 {
		t.Fatalf("expected subtotal 9000, got %d", c.SubtotalCents())
	}
	if c.ItemCount() != 5 {
		t.Fatalf("expected item count 5, got %d", c.ItemCount())
	}
}

func TestAddItemRejectsBadInput(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "", testItem(1)); err == nil {
		t.Fatal("expected error for empty session")
	}
	if _, err := svc.AddItem(ctx, "sess-1", testItem(0)); err == nil {
		t.Fatal("expected error for zero quantity")
	}

	_, err := svc.AddItem(ctx, "sess-1", Item{Quantity: 1})
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for nil product id, got %v", err)
	}
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()
	item := testItem(2)

	if _, err := svc.AddItem(ctx, "sess-1", item); err != nil {
		t.Fatalf("add: %v", err)
	}

	c, err := svc.UpdateQuantity(ctx, "sess-1", item.ProductID, 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart after quantity 0, got %d lines", len(c.Items))
	}

	if _, err := svc.UpdateQuantity(ctx, "sess-1", item.ProductID, 2); err == nil {
		t.Fatal("expected not-found for removed line")
	}
}

func TestUpdateQuantitySetsNewValue(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()
	item := testItem(2)

	if _, err := svc.AddItem(ctx, "sess-1", item); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.UpdateQuantity(ctx, "sess-1", item.ProductID, 7)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if c.Items[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", c.Items[0].Quantity)
	}
}

func TestRemoveItem(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()
	first := testItem(1)
	second := testItem(1)

	if _, err := svc.AddItem(ctx, "sess-1", first); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := svc.AddItem(ctx, "sess-1", second); err != nil {
		t.Fatalf("add second: %v", err)
	}

	c, err := svc.RemoveItem(ctx, "sess-1", first.ProductID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != second.ProductID {
		t.Fatalf("unexpected cart after removal: %+v", c.Items)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	storage := NewMemoryStorage()
	svc := newTestService(t, storage)
	ctx := context.Background()
	item := testItem(1)

	if _, err := svc.AddItem(ctx, "sess-1", item); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	c, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}
	if _, found, _ := storage.Load(ctx, "sess-1"); found {
		t.Fatal("expected stored snapshot to be deleted")
	}
}

func TestCartSurvivesStorageFailures(t *testing.T) {
	svc := newTestService(t, &failingStorage{})
	ctx := context.Background()
	item := testItem(2)

	c, err := svc.AddItem(ctx, "sess-1", item)
	if err != nil {
		t.Fatalf("add with failing storage: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected item in memory despite storage failure, got %+v", c.Items)
	}

	c, err = svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.SubtotalCents() != 3600 {
		t.Fatalf("expected subtotal 3600, got %d", c.SubtotalCents())
	}
}

func TestGetHydratesFromStorage(t *testing.T) {
	stored := testItem(4)
	svc := newTestService(t, &failingStorage{loaded: []Item{stored}})

	c, err := svc.Get(context.Background(), "sess-9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 4 {
		t.Fatalf("expected hydrated cart, got %+v", c.Items)
	}
}

// stickyDeleteStorage persists snapshots normally but refuses to delete them.
type stickyDeleteStorage struct {
	*MemoryStorage
}

func (s *stickyDeleteStorage) Delete(context.Context, string) error {
	return errors.New("storage down")
}

// flakySaveStorage fails the first save then recovers.
type flakySaveStorage struct {
	*MemoryStorage
	failures int
}

func (f *flakySaveStorage) Save(ctx context.Context, sessionID string, items []Item) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("storage down")
	}
	return f.MemoryStorage.Save(ctx, sessionID, items)
}

func TestClearedCartStaysEmptyWhenSnapshotDeleteFails(t *testing.T) {
	svc := newTestService(t, &stickyDeleteStorage{MemoryStorage: NewMemoryStorage()})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-1", testItem(2)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	c, err := svc.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected cleared cart to stay empty, got %+v", c.Items)
	}
	if c.ItemCount() != 0 {
		t.Fatalf("expected item count 0 after clear, got %d", c.ItemCount())
	}
}

func TestIdleSessionsAreNotRetainedInMemory(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		sessionID := uuid.NewString()
		if _, err := svc.Get(ctx, sessionID); err != nil {
			t.Fatalf("get %s: %v", sessionID, err)
		}
	}
	if _, err := svc.AddItem(ctx, "sess-1", testItem(1)); err != nil {
		t.Fatalf("add: %v", err)
	}

	impl := svc.(*service)
	if got := len(impl.retained); got != 0 {
		t.Fatalf("expected no carts retained in memory, got %d", got)
	}
}

func TestFailedWriteReleasedOncePersistenceRecovers(t *testing.T) {
	storage := &flakySaveStorage{MemoryStorage: NewMemoryStorage(), failures: 1}
	svc := newTestService(t, storage)
	ctx := context.Background()
	impl := svc.(*service)

	item := testItem(1)
	if _, err := svc.AddItem(ctx, "sess-1", item); err != nil {
		t.Fatalf("add with failing save: %v", err)
	}
	if len(impl.retained) != 1 {
		t.Fatalf("expected cart retained while save fails, got %d entries", len(impl.retained))
	}

	c, err := svc.UpdateQuantity(ctx, "sess-1", item.ProductID, 3)
	if err != nil {
		t.Fatalf("update after recovery: %v", err)
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", c.Items[0].Quantity)
	}
	if len(impl.retained) != 0 {
		t.Fatalf("expected retained entry released after successful save, got %d", len(impl.retained))
	}

	items, found, err := storage.Load(ctx, "sess-1")
	if err != nil || !found {
		t.Fatalf("expected snapshot in storage, found=%v err=%v", found, err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("unexpected stored snapshot: %+v", items)
	}
}

func TestCartsAreIsolatedBySession(t *testing.T) {
	svc := newTestService(t, NewMemoryStorage())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "sess-a", testItem(1)); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.Get(ctx, "sess-b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart for other session, got %+v", c.Items)
	}
}

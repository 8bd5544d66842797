package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/middleware"
	cartsvc "github.com/hearthside-goods/storefront-backend/internal/cart"
)

type stubCartService struct {
	cart    *cartsvc.Cart
	err     error
	added   []cartsvc.Item
	updated map[uuid.UUID]int
	removed []uuid.UUID
	cleared []string
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, item cartsvc.Item) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, item)
	return s.cart, nil
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		s.updated = map[uuid.UUID]int{}
	}
	s.updated[productID] = quantity
	return s.cart, nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*cartsvc.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.removed = append(s.removed, productID)
	return s.cart, nil
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.cleared = append(s.cleared, sessionID)
	return s.err
}

func withCartRouteContext(req *http.Request, productID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("productId", productID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestCartFetchReturnsDerivedTotals(t *testing.T) {
	sessionID := uuid.NewString()
	stub := &stubCartService{cart: &cartsvc.Cart{
		SessionID: sessionID,
		Items: []cartsvc.Item{
			{ProductID: uuid.New(), Name: "Stoneware Mug", PriceCents: 1800, Quantity: 2},
			{ProductID: uuid.New(), Name: "Linen Napkin Set", PriceCents: 2400, Quantity: 1},
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartFetch(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var out cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.SessionID != sessionID {
		t.Fatalf("unexpected session %s", out.SessionID)
	}
	if out.SubtotalCents != 6000 {
		t.Fatalf("expected subtotal 6000 got %d", out.SubtotalCents)
	}
	if out.ItemCount != 3 {
		t.Fatalf("expected item count 3 got %d", out.ItemCount)
	}
}

func TestCartFetchEmptyCartHasItemsArray(t *testing.T) {
	sessionID := uuid.NewString()
	stub := &stubCartService{cart: &cartsvc.Cart{SessionID: sessionID}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartFetch(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", resp.Body.String())
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	stub := &stubCartService{cart: &cartsvc.Cart{}}

	body := `{"productId":"` + uuid.NewString() + `","name":"Mug","priceCents":1800,"quantity":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartSession(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()
	CartAddItem(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(stub.added) != 0 {
		t.Fatalf("service should not be called, got %v", stub.added)
	}
}

func TestCartAddItemMergesPayload(t *testing.T) {
	sessionID := uuid.NewString()
	productID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.Cart{SessionID: sessionID}}

	body := `{"productId":"` + productID.String() + `","name":"Mug","slug":"stoneware-mug","priceCents":1800,"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartAddItem(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(stub.added) != 1 {
		t.Fatalf("expected one added item, got %d", len(stub.added))
	}
	if stub.added[0].ProductID != productID || stub.added[0].Quantity != 2 {
		t.Fatalf("unexpected item %+v", stub.added[0])
	}
}

func TestCartUpdateItemInvalidProductID(t *testing.T) {
	stub := &stubCartService{cart: &cartsvc.Cart{}}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/not-a-uuid", strings.NewReader(`{"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req = withCartRouteContext(req, "not-a-uuid")
	resp := httptest.NewRecorder()
	CartUpdateItem(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemForwardsQuantity(t *testing.T) {
	sessionID := uuid.NewString()
	productID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.Cart{SessionID: sessionID}}

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/"+productID.String(), strings.NewReader(`{"quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	req = withCartRouteContext(req, productID.String())
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartUpdateItem(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	got, ok := stub.updated[productID]
	if !ok {
		t.Fatal("expected UpdateQuantity to be invoked")
	}
	if got != 0 {
		t.Fatalf("expected quantity 0 forwarded, got %d", got)
	}
}

func TestCartRemoveItem(t *testing.T) {
	sessionID := uuid.NewString()
	productID := uuid.New()
	stub := &stubCartService{cart: &cartsvc.Cart{SessionID: sessionID}}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/"+productID.String(), nil)
	req = withCartRouteContext(req, productID.String())
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartRemoveItem(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(stub.removed) != 1 || stub.removed[0] != productID {
		t.Fatalf("unexpected removals %v", stub.removed)
	}
}

func TestCartClear(t *testing.T) {
	sessionID := uuid.NewString()
	stub := &stubCartService{}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req = req.WithContext(middleware.WithCartSession(req.Context(), sessionID))
	resp := httptest.NewRecorder()
	CartClear(stub, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(stub.cleared) != 1 || stub.cleared[0] != sessionID {
		t.Fatalf("unexpected clears %v", stub.cleared)
	}
}

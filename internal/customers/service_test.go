package customers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
)

type stubCustomersRepo struct {
	summaries []Summary
}

func (s *stubCustomersRepo) ListSummaries(context.Context) ([]Summary, error) {
	return s.summaries, nil
}

func (s *stubCustomersRepo) SummaryByUser(_ context.Context, userID uuid.UUID) (*Summary, error) {
	for i := range s.summaries {
		if s.summaries[i].UserID != nil && *s.summaries[i].UserID == userID {
			return &s.summaries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomersRepo) SummaryByGuestEmail(_ context.Context, email string) (*Summary, error) {
	for i := range s.summaries {
		if s.summaries[i].UserID == nil && s.summaries[i].Email == email {
			return &s.summaries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubOrderHistory struct {
	byUser  map[uuid.UUID][]models.Order
	byEmail map[string][]models.Order
}

func (s *stubOrderHistory) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.byUser[userID], nil
}

func (s *stubOrderHistory) ListByEmail(_ context.Context, email string) ([]models.Order, error) {
	return s.byEmail[email], nil
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestGetByUserIncludesOrderHistory(t *testing.T) {
	buyerID := uuid.New()
	repo := &stubCustomersRepo{summaries: []Summary{{
		UserID:          &buyerID,
		Email:           "quinn@example.com",
		Name:            "Quinn Harper",
		OrderCount:      2,
		TotalSpentCents: 5000,
		LastOrderAt:     time.Now(),
	}}}
	history := &stubOrderHistory{byUser: map[uuid.UUID][]models.Order{
		buyerID: {
			{ID: uuid.New(), UserID: &buyerID, Email: "quinn@example.com", TotalCents: 3000},
			{ID: uuid.New(), UserID: &buyerID, Email: "quinn@example.com", TotalCents: 2000},
		},
	}}

	svc, err := NewService(repo, history)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	detail, err := svc.GetByUser(context.Background(), buyerID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if detail.Customer.OrderCount != 2 {
		t.Fatalf("expected order count 2, got %d", detail.Customer.OrderCount)
	}
	if len(detail.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(detail.Orders))
	}
}

func TestGetByUserMissing(t *testing.T) {
	svc, _ := NewService(&stubCustomersRepo{}, &stubOrderHistory{})

	_, err := svc.GetByUser(context.Background(), uuid.New())
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestGetByUserRequiresID(t *testing.T) {
	svc, _ := NewService(&stubCustomersRepo{}, &stubOrderHistory{})

	_, err := svc.GetByUser(context.Background(), uuid.Nil)
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestGetGuestIncludesOrders(t *testing.T) {
	repo := &stubCustomersRepo{summaries: []Summary{{
		Email:           "guest@example.com",
		Name:            "Guest Buyer",
		OrderCount:      1,
		TotalSpentCents: 1500,
		LastOrderAt:     time.Now(),
	}}}
	history := &stubOrderHistory{byEmail: map[string][]models.Order{
		"guest@example.com": {{ID: uuid.New(), Email: "guest@example.com", TotalCents: 1500}},
	}}
	svc, _ := NewService(repo, history)

	detail, err := svc.GetGuest(context.Background(), "guest@example.com")
	if err != nil {
		t.Fatalf("GetGuest: %v", err)
	}
	if detail.Customer.UserID != nil {
		t.Fatal("expected guest summary without a user id")
	}
	if len(detail.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(detail.Orders))
	}
}

func TestGetGuestRequiresEmail(t *testing.T) {
	svc, _ := NewService(&stubCustomersRepo{}, &stubOrderHistory{})

	_, err := svc.GetGuest(context.Background(), "  ")
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestListReturnsSummaries(t *testing.T) {
	repo := &stubCustomersRepo{summaries: []Summary{
		{Email: "a@example.com", OrderCount: 1},
		{Email: "b@example.com", OrderCount: 3},
	}}
	svc, _ := NewService(repo, &stubOrderHistory{})

	rows, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(rows))
	}
}

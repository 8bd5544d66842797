package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Summary is one aggregated customer row derived from order history.
// Registered buyers carry a user id; guest checkouts are grouped by email.
type Summary struct {
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	OrderCount      int        `json:"order_count"`
	TotalSpentCents int        `json:"total_spent_cents"`
	LastOrderAt     time.Time  `json:"last_order_at"`
}

// Repository aggregates customers out of the orders table. There is no
// customer table of its own; identity issuance lives outside this service.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const summaryQuery = `
SELECT user_id,
       email,
       MAX(shipping_name) AS name,
       COUNT(*) AS order_count,
       SUM(total_cents) AS total_spent_cents,
       MAX(created_at) AS last_order_at
FROM orders
GROUP BY user_id, email
ORDER BY last_order_at DESC
`

// ListSummaries returns every known customer, most recently active first.
func (r *Repository) ListSummaries(ctx context.Context) ([]Summary, error) {
	var rows []Summary
	if err := r.db.WithContext(ctx).Raw(summaryQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const userSummaryQuery = `
SELECT user_id,
       email,
       MAX(shipping_name) AS name,
       COUNT(*) AS order_count,
       SUM(total_cents) AS total_spent_cents,
       MAX(created_at) AS last_order_at
FROM orders
WHERE user_id = ?
GROUP BY user_id, email
`

// SummaryByUser aggregates one registered buyer. Returns
// gorm.ErrRecordNotFound when the user has no orders.
func (r *Repository) SummaryByUser(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	var rows []Summary
	if err := r.db.WithContext(ctx).Raw(userSummaryQuery, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

const guestSummaryQuery = `
SELECT user_id,
       email,
       MAX(shipping_name) AS name,
       COUNT(*) AS order_count,
       SUM(total_cents) AS total_spent_cents,
       MAX(created_at) AS last_order_at
FROM orders
WHERE email = ? AND user_id IS NULL
GROUP BY email
`

// SummaryByGuestEmail aggregates guest checkouts under one email address.
func (r *Repository) SummaryByGuestEmail(ctx context.Context, email string) (*Summary, error) {
	var rows []Summary
	if err := r.db.WithContext(ctx).Raw(guestSummaryQuery, email).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

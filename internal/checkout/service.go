package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hearthside-goods/storefront-backend/internal/pricing"
	"github.com/hearthside-goods/storefront-backend/pkg/auth"
	"github.com/hearthside-goods/storefront-backend/pkg/db/models"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

var zipRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ItemInput is one cart line submitted at checkout.
type ItemInput struct {
	ProductID  uuid.UUID
	Name       string
	PriceCents int
	Quantity   int
}

// ShippingInfo is the destination snapshot submitted at checkout.
type ShippingInfo struct {
	Email   string
	Name    string
	Address string
	City    string
	State   string
	Zip     string
}

// SubmitInput is the full checkout payload. The money fields are the
// client's view of pricing; submission recomputes them and rejects any
// disagreement.
type SubmitInput struct {
	Items             []ItemInput
	Shipping          ShippingInfo
	SubtotalCents     int
	ShippingCostCents int
	TaxCents          int
	TotalCents        int
}

// Result carries the identifier of the created order.
type Result struct {
	OrderID uuid.UUID
}

// Service turns a validated checkout payload into a durable order.
type Service interface {
	Submit(ctx context.Context, input SubmitInput, identity *auth.Identity) (*Result, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	calc    *pricing.Calculator
	timeout time.Duration
	logg    *logger.Logger
}

// NewService builds the order submission service.
func NewService(repo Repository, tx txRunner, calc *pricing.Calculator, timeout time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("checkout repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if calc == nil {
		return nil, fmt.Errorf("pricing calculator required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("submit timeout must be positive")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		calc:    calc,
		timeout: timeout,
		logg:    logg,
	}, nil
}

// Submit validates the payload, verifies the submitted pricing against the
// authoritative computation, and writes the order header plus line items in
// a single transaction. Identity is optional; guest orders carry no user id.
func (s *service) Submit(ctx context.Context, input SubmitInput, identity *auth.Identity) (*Result, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}
	if err := s.verifyPricing(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		Status:            enums.OrderStatusConfirmed,
		Email:             strings.TrimSpace(input.Shipping.Email),
		ShippingName:      strings.TrimSpace(input.Shipping.Name),
		ShippingAddress:   strings.TrimSpace(input.Shipping.Address),
		ShippingCity:      strings.TrimSpace(input.Shipping.City),
		ShippingState:     strings.TrimSpace(input.Shipping.State),
		ShippingZip:       strings.TrimSpace(input.Shipping.Zip),
		SubtotalCents:     input.SubtotalCents,
		ShippingCostCents: input.ShippingCostCents,
		TaxCents:          input.TaxCents,
		TotalCents:        input.TotalCents,
	}
	if identity != nil && identity.UserID != uuid.Nil {
		userID := identity.UserID
		order.UserID = &userID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		created, err := repo.CreateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("insert order header: %w", err)
		}

		items := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			items = append(items, models.OrderItem{
				OrderID:        created.ID,
				ProductID:      item.ProductID,
				ProductName:    item.Name,
				Quantity:       item.Quantity,
				UnitPriceCents: item.PriceCents,
			})
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, err, "checkout timed out before the order was written")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create order")
	}

	s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order created")
	return &Result{OrderID: order.ID}, nil
}

func validateSubmitInput(input SubmitInput) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product id is required")
		}
		if strings.TrimSpace(item.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		if item.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be at least 1")
		}
		if item.PriceCents < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
		}
	}

	shipping := input.Shipping
	fields := map[string]string{
		"email":   shipping.Email,
		"name":    shipping.Name,
		"address": shipping.Address,
		"city":    shipping.City,
		"state":   shipping.State,
		"zip":     shipping.Zip,
	}
	for _, field := range []string{"email", "name", "address", "city", "state", "zip"} {
		if strings.TrimSpace(fields[field]) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "missing shipping information").
				WithDetails(map[string]string{"field": field})
		}
	}
	if !strings.Contains(shipping.Email, "@") {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping email is invalid")
	}
	if !zipRe.MatchString(strings.TrimSpace(shipping.Zip)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "shipping zip must be a valid postal code")
	}
	return nil
}

// verifyPricing recomputes the breakdown from the submitted items and
// rejects totals that disagree. The shipping cost must match one of the two
// quoted delivery speeds for the destination.
func (s *service) verifyPricing(input SubmitInput) error {
	subtotal := 0
	for _, item := range input.Items {
		subtotal += item.PriceCents * item.Quantity
	}
	if input.SubtotalCents != subtotal {
		return pkgerrors.New(pkgerrors.CodeValidation, "submitted subtotal does not match cart items")
	}

	state := strings.TrimSpace(input.Shipping.State)
	matched := false
	for _, speed := range []enums.DeliverySpeed{enums.DeliverySpeedStandard, enums.DeliverySpeedExpress} {
		if input.ShippingCostCents == s.calc.ShippingCents(subtotal, state, speed) {
			matched = true
			break
		}
	}
	if !matched {
		return pkgerrors.New(pkgerrors.CodeValidation, "submitted shipping cost does not match any quoted rate")
	}

	if tax := s.calc.TaxCents(subtotal); input.TaxCents != tax {
		return pkgerrors.New(pkgerrors.CodeValidation, "submitted tax does not match the computed amount")
	}
	if input.TotalCents != subtotal+input.ShippingCostCents+input.TaxCents {
		return pkgerrors.New(pkgerrors.CodeValidation, "submitted total does not add up")
	}
	return nil
}

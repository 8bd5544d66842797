package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hearthside-goods/storefront-backend/api/middleware"
	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/api/validators"
	"github.com/hearthside-goods/storefront-backend/internal/orders"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
	"github.com/hearthside-goods/storefront-backend/pkg/pagination"
)

type updateOrderStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrdersList returns one cursor page of all orders.
func AdminOrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params := pagination.Params{
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil || value <= 0 {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			params.Limit = value
		}

		result, err := svc.AdminList(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AdminOrderDetail returns one order with its line items.
func AdminOrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.GetOrder(ctx, orderID, middleware.IdentityFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminOrderUpdateStatus moves an order through its fulfillment lifecycle.
func AdminOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateOrderStatusPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.AdminUpdateStatus(ctx, orderID, enums.OrderStatus(strings.TrimSpace(payload.Status)))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

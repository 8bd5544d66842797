package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/internal/customers"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

// AdminCustomersList returns every customer known from order history.
func AdminCustomersList(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if rows == nil {
			rows = []customers.Summary{}
		}
		responses.WriteSuccess(w, map[string]any{"customers": rows})
	}
}

// AdminCustomerDetail returns a registered buyer and their order history.
func AdminCustomerDetail(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := strings.TrimSpace(chi.URLParam(r, "userId"))
		userID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		detail, err := svc.GetByUser(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// AdminGuestCustomerDetail returns the guest checkouts grouped under one
// email address.
func AdminGuestCustomerDetail(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := chi.URLParam(r, "email")
		email, err := url.PathUnescape(raw)
		if err != nil {
			email = raw
		}

		detail, err := svc.GetGuest(ctx, email)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

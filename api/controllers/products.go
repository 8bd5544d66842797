package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hearthside-goods/storefront-backend/api/responses"
	"github.com/hearthside-goods/storefront-backend/internal/products"
	"github.com/hearthside-goods/storefront-backend/pkg/enums"
	pkgerrors "github.com/hearthside-goods/storefront-backend/pkg/errors"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
)

// ProductsList returns catalog products matching the query filters.
func ProductsList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.Browse(ctx, filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

// ProductsFeatured returns the storefront's highlighted products.
func ProductsFeatured(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rows, err := svc.Featured(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

// ProductDetail returns one product by its catalog slug.
func ProductDetail(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.GetBySlug(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// CategoriesList returns every browse category.
func CategoriesList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rows, err := svc.Categories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": rows})
	}
}

func parseListFilters(r *http.Request) (products.ListFilters, error) {
	query := r.URL.Query()

	filters := products.ListFilters{
		CategorySlug: strings.TrimSpace(query.Get("category")),
		Query:        strings.TrimSpace(query.Get("q")),
		FeaturedOnly: query.Get("featured") == "true",
	}

	sort, err := enums.ParseSortOption(strings.TrimSpace(query.Get("sort")))
	if err != nil {
		return products.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort option")
	}
	filters.Sort = sort

	if raw := strings.TrimSpace(query.Get("min_price")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return products.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "min_price must be an integer of cents")
		}
		filters.MinPriceCents = &value
	}
	if raw := strings.TrimSpace(query.Get("max_price")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return products.ListFilters{}, pkgerrors.New(pkgerrors.CodeValidation, "max_price must be an integer of cents")
		}
		filters.MaxPriceCents = &value
	}

	return filters, nil
}

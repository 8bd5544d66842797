package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hearthside-goods/storefront-backend/api/controllers"
	"github.com/hearthside-goods/storefront-backend/api/middleware"
	"github.com/hearthside-goods/storefront-backend/internal/cart"
	checkoutsvc "github.com/hearthside-goods/storefront-backend/internal/checkout"
	"github.com/hearthside-goods/storefront-backend/internal/customers"
	"github.com/hearthside-goods/storefront-backend/internal/orders"
	"github.com/hearthside-goods/storefront-backend/internal/pricing"
	"github.com/hearthside-goods/storefront-backend/internal/products"
	"github.com/hearthside-goods/storefront-backend/internal/reviews"
	"github.com/hearthside-goods/storefront-backend/internal/wishlist"
	"github.com/hearthside-goods/storefront-backend/pkg/config"
	"github.com/hearthside-goods/storefront-backend/pkg/db"
	"github.com/hearthside-goods/storefront-backend/pkg/logger"
	"github.com/hearthside-goods/storefront-backend/pkg/metrics"
	"github.com/hearthside-goods/storefront-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Cart      cart.Service
	Checkout  checkoutsvc.Service
	Customers customers.Service
	Orders    orders.Service
	Pricing   *pricing.Calculator
	Products  products.Service
	Reviews   reviews.Service
	Wishlist  wishlist.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Metrics(httpMetrics),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Pinned storefront checkout contract. Identity is optional; a cart
	// session header lets the handler clear the cart it just sold.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, logg))
		r.Use(middleware.CartSession(logg))
		r.Post("/checkout", controllers.Checkout(svcs.Checkout, svcs.Cart, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(svcs.Products, logg))
			r.Get("/featured", controllers.ProductsFeatured(svcs.Products, logg))
			r.Get("/{slug}", controllers.ProductDetail(svcs.Products, logg))
			r.Get("/{slug}/reviews", controllers.ProductReviews(svcs.Reviews, logg))
		})
		r.Get("/categories", controllers.CategoriesList(svcs.Products, logg))
		r.Get("/shipping/rates", controllers.ShippingRates(svcs.Pricing, logg))
		r.Post("/reviews", controllers.SubmitReview(svcs.Reviews, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.CartFetch(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
			r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(svcs.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(svcs.Orders, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.RequireIdentity(logg))
			r.Get("/", controllers.WishlistList(svcs.Wishlist, logg))
			r.Get("/ids", controllers.WishlistIDs(svcs.Wishlist, logg))
			r.Post("/{productId}", controllers.WishlistAdd(svcs.Wishlist, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(svcs.Wishlist, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminProductsList(svcs.Products, logg))
			r.Post("/", controllers.AdminProductCreate(svcs.Products, logg))
			r.Put("/{productId}", controllers.AdminProductUpdate(svcs.Products, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(svcs.Products, logg))
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(svcs.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(svcs.Orders, logg))
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.AdminReviewsPending(svcs.Reviews, logg))
			r.Post("/{reviewId}/approve", controllers.AdminReviewApprove(svcs.Reviews, logg))
			r.Delete("/{reviewId}", controllers.AdminReviewDelete(svcs.Reviews, logg))
		})
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.AdminCustomersList(svcs.Customers, logg))
			r.Get("/guest/{email}", controllers.AdminGuestCustomerDetail(svcs.Customers, logg))
			r.Get("/{userId}", controllers.AdminCustomerDetail(svcs.Customers, logg))
		})
	})

	return r
}

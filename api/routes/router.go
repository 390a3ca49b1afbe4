package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fremed/fremed-backend/api/controllers"
	"github.com/fremed/fremed-backend/api/middleware"
	authsvc "github.com/fremed/fremed-backend/internal/auth"
	cartsvc "github.com/fremed/fremed-backend/internal/cart"
	"github.com/fremed/fremed-backend/internal/catalog"
	certsvc "github.com/fremed/fremed-backend/internal/certificates"
	ordersvc "github.com/fremed/fremed-backend/internal/orders"
	promosvc "github.com/fremed/fremed-backend/internal/promotions"
	usersvc "github.com/fremed/fremed-backend/internal/users"
	"github.com/fremed/fremed-backend/pkg/auth/session"
	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db"
	"github.com/fremed/fremed-backend/pkg/enums"
	"github.com/fremed/fremed-backend/pkg/logger"
	"github.com/fremed/fremed-backend/pkg/metrics"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RedisPinger    db.Pinger
	SessionChecker session.Checker
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics

	Auth         authsvc.Service
	Catalog      catalog.Service
	Cart         cartsvc.Service
	Orders       ordersvc.Service
	Promotions   promosvc.Service
	Certificates certsvc.Service
	Users        usersvc.Service
}

// NewRouter builds the full route tree.
func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	admin := string(enums.UserRoleAdmin)
	manager := string(enums.UserRoleManager)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DBPinger, d.RedisPinger))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, d.SessionChecker, logg)).
			Post("/logout", controllers.AuthLogout(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.SessionChecker, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(d.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(d.Catalog, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, admin, manager))
				r.Post("/", controllers.ProductCreate(d.Catalog, logg))
				r.Patch("/{productId}", controllers.ProductUpdate(d.Catalog, logg))
				r.Delete("/{productId}", controllers.ProductDelete(d.Catalog, logg))
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(d.Catalog, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, admin, manager))
				r.Post("/", controllers.CategoryCreate(d.Catalog, logg))
				r.Patch("/{categoryId}", controllers.CategoryUpdate(d.Catalog, logg))
				r.Delete("/{categoryId}", controllers.CategoryDelete(d.Catalog, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Cart, logg))
			r.Post("/items", controllers.CartAddItem(d.Cart, logg))
			r.Put("/items/{productId}", controllers.CartSetQuantity(d.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Cart, logg))
			r.Delete("/", controllers.CartClear(d.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/checkout", controllers.OrderCheckout(d.Orders, logg))
			r.Get("/", controllers.OrderList(d.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(d.Orders, logg))
			r.Get("/{orderId}/export", controllers.OrderExport(d.Orders, logg))
			r.Patch("/{orderId}", controllers.OrderUpdate(d.Orders, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(d.Orders, logg))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", controllers.PromotionList(d.Promotions, logg))
			r.Get("/{promotionId}", controllers.PromotionDetail(d.Promotions, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, admin, manager))
				r.Post("/", controllers.PromotionCreate(d.Promotions, logg))
				r.Patch("/{promotionId}", controllers.PromotionUpdate(d.Promotions, logg))
				r.Delete("/{promotionId}", controllers.PromotionDelete(d.Promotions, logg))
			})
		})

		r.Route("/certificates", func(r chi.Router) {
			r.Get("/", controllers.CertificateList(d.Certificates, logg))
			r.Get("/{certificateId}", controllers.CertificateDetail(d.Certificates, logg))
			r.Get("/{certificateId}/export", controllers.CertificateExport(d.Certificates, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, admin, manager))
				r.Post("/", controllers.CertificateCreate(d.Certificates, logg))
				r.Patch("/{certificateId}", controllers.CertificateUpdate(d.Certificates, logg))
				r.Delete("/{certificateId}", controllers.CertificateDelete(d.Certificates, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, admin))
			r.Get("/", controllers.UserList(d.Users, logg))
			r.Get("/{userId}", controllers.UserDetail(d.Users, logg))
			r.Post("/", controllers.UserCreate(d.Users, logg))
			r.Patch("/{userId}", controllers.UserUpdate(d.Users, logg))
			r.Delete("/{userId}", controllers.UserDelete(d.Users, logg))
		})
	})

	return r
}

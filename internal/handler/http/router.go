package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CassioFig/retail-dashboard-app-server/internal/repository"
	"github.com/CassioFig/retail-dashboard-app-server/internal/service"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/health"
	"github.com/CassioFig/retail-dashboard-app-server/pkg/middleware"
)

// Services groups the application services the router exposes.
type Services struct {
	Users   *service.UserService
	Catalog *service.CatalogService
	Cart    *service.CartService
	Reviews *service.ReviewService
	Reports *service.ReportService
}

// NewRouter creates a chi router with all dashboard server routes registered.
func NewRouter(
	svcs Services,
	users repository.UserRepository,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("retail-dashboard"))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	authHandler := NewAuthHandler(svcs.Users, logger)
	catalogHandler := NewCatalogHandler(svcs.Catalog, users, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	reviewHandler := NewReviewHandler(svcs.Reviews, logger)
	reportHandler := NewReportHandler(svcs.Reports, users, logger)

	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/signin", authHandler.SignIn)

		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/reviews/product/{productId}", reviewHandler.ListReviews)

		// Everything below needs a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(UserIDFromHeader)

			r.Post("/carts", cartHandler.AddToCart)
			r.Get("/carts", cartHandler.GetCart)
			r.Delete("/carts/product/{productId}", cartHandler.RemoveFromCart)
			r.Post("/carts/checkout", cartHandler.Checkout)

			r.Post("/reviews", reviewHandler.AddReview)

			r.Post("/admin/products", catalogHandler.CreateProduct)
			r.Patch("/admin/products/{productId}/stock", catalogHandler.AdjustStock)
			r.Get("/admin/orders", reportHandler.SalesReport)
		})
	})

	return r
}

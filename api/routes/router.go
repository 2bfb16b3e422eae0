package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/bookstore-admin/api/controllers"
	"github.com/angelmondragon/bookstore-admin/api/middleware"
	"github.com/angelmondragon/bookstore-admin/internal/auth"
	"github.com/angelmondragon/bookstore-admin/internal/categories"
	"github.com/angelmondragon/bookstore-admin/internal/grid"
	product "github.com/angelmondragon/bookstore-admin/internal/products"
	"github.com/angelmondragon/bookstore-admin/pkg/auth/session"
	"github.com/angelmondragon/bookstore-admin/pkg/config"
	"github.com/angelmondragon/bookstore-admin/pkg/db"
	"github.com/angelmondragon/bookstore-admin/pkg/enums"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/metrics"
	"github.com/angelmondragon/bookstore-admin/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// redisStore is the slice of the Redis client the HTTP layer touches directly.
type redisStore interface {
	redis.IdempotencyStore
	redis.Pinger
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient redisStore,
	sessionManager sessionManager,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	authService auth.Service,
	productService product.Service,
	categoryService categories.Service,
	gridService grid.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	rateStore := rateLimitStore(redisClient)
	idemStore := idempotencyStore(redisClient)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if cfg.Metrics.Enabled && metricsHandler != nil {
		r.Handle(cfg.Metrics.Path, metricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(sessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/menu", controllers.Menu(logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{productId}", controllers.GetProduct(productService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
				r.Post("/", controllers.CreateProduct(productService, logg))
				r.Patch("/{productId}", controllers.UpdateProduct(productService, logg))
				r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			})
		})

		r.Get("/categories", controllers.ListCategories(categoryService, logg))

		r.Route("/grid", func(r chi.Router) {
			r.Get("/", controllers.GridView(gridService, logg))
			r.Put("/viewport", controllers.GridViewport(gridService, logg))
			r.Get("/selection", controllers.GridSelection(gridService, logg))
			r.Put("/selection", controllers.GridSelect(gridService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
			r.Post("/categories", controllers.AdminCreateCategory(categoryService, logg))
			r.Patch("/categories/{categoryId}", controllers.AdminRenameCategory(categoryService, logg))
			r.Delete("/categories/{categoryId}", controllers.AdminDeleteCategory(categoryService, logg))
		})
	})

	return r
}

// The middlewares skip their work on a nil store; keep a nil client from
// turning into a non-nil interface.
func rateLimitStore(client redisStore) interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
} {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client redisStore) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}

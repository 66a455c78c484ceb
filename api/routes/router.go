package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	authsvc "github.com/stockroomhq/stockroom-backend/internal/auth"
	categorysvc "github.com/stockroomhq/stockroom-backend/internal/categories"
	productsvc "github.com/stockroomhq/stockroom-backend/internal/products"
	"github.com/stockroomhq/stockroom-backend/pkg/auth/session"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
	"github.com/stockroomhq/stockroom-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     authsvc.Service
	ProductService  productsvc.Service
	CategoryService categorysvc.Service
	AuditLogs       controllers.AuditLogReader
	RequestMetrics  *metrics.RequestMetrics
	Gatherer        prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.RequestMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Get("/users/me", controllers.UserProfile(deps.AuthService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductService, cfg.Catalog, logg))
			r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.ProductService, logg))
			r.Put("/{productId}", controllers.ProductUpdate(deps.ProductService, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.ProductService, logg))
			r.Get("/{productId}/logs", controllers.ProductLogs(deps.ProductService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(deps.CategoryService, logg))
			r.Post("/", controllers.CategoryCreate(deps.CategoryService, logg))
			r.Get("/{categoryId}", controllers.CategoryDetail(deps.CategoryService, logg))
			r.Put("/{categoryId}", controllers.CategoryUpdate(deps.CategoryService, logg))
			r.Get("/{categoryId}/products", controllers.CategoryProducts(deps.ProductService, logg))
			r.With(middleware.RequireRoles(logg, string(enums.RoleAdmin))).
				Delete("/{categoryId}", controllers.CategoryDelete(deps.CategoryService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, string(enums.RoleAdmin)))

			r.Route("/logs", func(r chi.Router) {
				r.Get("/", controllers.AuditLogsByAction(deps.AuditLogs, logg))
				r.Get("/users/{userId}", controllers.AuditLogsByUser(deps.AuditLogs, logg))
			})
			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UserList(deps.AuthService, logg))
				r.Get("/{userId}", controllers.UserDetail(deps.AuthService, logg))
			})
		})
	})

	return r
}

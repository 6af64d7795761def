package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/dulcesamigas/pos-backend/internal/config"
	"github.com/dulcesamigas/pos-backend/internal/httpx"
	"github.com/dulcesamigas/pos-backend/internal/metrics"
	"github.com/dulcesamigas/pos-backend/internal/migrations"
	"github.com/dulcesamigas/pos-backend/internal/modules/auth"
	"github.com/dulcesamigas/pos-backend/internal/modules/catalog"
	"github.com/dulcesamigas/pos-backend/internal/modules/customer"
	"github.com/dulcesamigas/pos-backend/internal/modules/order"
	"github.com/dulcesamigas/pos-backend/internal/modules/sale"
	"github.com/dulcesamigas/pos-backend/internal/modules/user"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("opening database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("database unreachable")
	}
	if err := migrations.Apply(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("applying migrations")
	}
	logger.Info().Msg("database ready")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("redis unreachable")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(httpx.RequestLogger(logger))
	router.Use(metrics.Middleware)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	if cfg.AdminPassword != "" {
		if err := userService.EnsureFounder(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			logger.Fatal().Err(err).Msg("seeding founder account")
		}
	}

	revocations := auth.NewRedisRevocationList(redisClient)
	authService := auth.NewService(userRepo, revocations, []byte(cfg.JWTSecret), cfg.TokenTTL)
	auth.NewHandler(authService).RegisterRoutes(router)

	authn := auth.Middleware(authService)
	guard := func(resource, action string) func(http.Handler) http.Handler {
		require := auth.Require(resource, action)
		return func(next http.Handler) http.Handler {
			return authn(require(next))
		}
	}

	user.NewHandler(userService, guard).RegisterRoutes(router)

	// ── Catalog & Customers ─────────────────────────────────
	products := catalog.NewService(catalog.NewPostgresStore(db, catalog.KindProduct))
	toppings := catalog.NewService(catalog.NewPostgresStore(db, catalog.KindTopping))
	syrups := catalog.NewService(catalog.NewPostgresStore(db, catalog.KindSyrup))
	catalog.NewHandler(products, toppings, syrups, guard).RegisterRoutes(router)

	customerService := customer.NewService(customer.NewPostgresRepository(db))
	customer.NewHandler(customerService, guard).RegisterRoutes(router)

	// ── Sales & Orders ──────────────────────────────────────
	saleService := sale.NewService(sale.NewPostgresRepository(db))
	sale.NewHandler(saleService, guard).RegisterRoutes(router)

	orderService := order.NewService(
		order.NewPostgresRepository(db),
		userRepo,
		order.NewRedisIdempotencyStore(redisClient),
	)
	order.NewHandler(orderService, authn, auth.Require).RegisterRoutes(router)

	router.Handle("/metrics", metrics.Handler())

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server listening")
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

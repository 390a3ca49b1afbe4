package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fremed/fremed-backend/api/routes"
	"github.com/fremed/fremed-backend/internal/auth"
	"github.com/fremed/fremed-backend/internal/cart"
	"github.com/fremed/fremed-backend/internal/catalog"
	"github.com/fremed/fremed-backend/internal/certificates"
	"github.com/fremed/fremed-backend/internal/orders"
	"github.com/fremed/fremed-backend/internal/pricing"
	"github.com/fremed/fremed-backend/internal/promotions"
	"github.com/fremed/fremed-backend/internal/users"
	"github.com/fremed/fremed-backend/pkg/auth/session"
	"github.com/fremed/fremed-backend/pkg/config"
	"github.com/fremed/fremed-backend/pkg/db"
	"github.com/fremed/fremed-backend/pkg/db/models"
	"github.com/fremed/fremed-backend/pkg/logger"
	"github.com/fremed/fremed-backend/pkg/metrics"
	"github.com/fremed/fremed-backend/pkg/redis"
	"github.com/fremed/fremed-backend/pkg/seed"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := dbClient.DB().AutoMigrate(models.All()...); err != nil {
		logg.Error(context.Background(), "failed to migrate schema", err)
		os.Exit(1)
	}

	if err := seed.Run(context.Background(), dbClient.DB(), cfg, logg); err != nil {
		logg.Error(context.Background(), "failed to seed demo data", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	cartRepo := cart.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())
	promotionsRepo := promotions.NewRepository(dbClient.DB())
	certificatesRepo := certificates.NewRepository(dbClient.DB())

	authService, err := auth.NewService(usersRepo, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	promotionsService, err := promotions.NewService(promotionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create promotions service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(ordersRepo, cartRepo, promotionsService, pricing.NewCalculator(cfg.Pricing))
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	certificatesService, err := certificates.NewService(certificatesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create certificates service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DBPinger:       dbClient,
			RedisPinger:    redisClient,
			SessionChecker: sessionManager,
			Registry:       registry,
			HTTPMetrics:    httpMetrics,

			Auth:         authService,
			Catalog:      catalogService,
			Cart:         cartService,
			Orders:       ordersService,
			Promotions:   promotionsService,
			Certificates: certificatesService,
			Users:        usersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

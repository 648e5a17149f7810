package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"AgroShopAPI/internal/config"
	"AgroShopAPI/internal/db"
	"AgroShopAPI/internal/events"
	"AgroShopAPI/internal/logging"
	"AgroShopAPI/internal/metrics"
	"AgroShopAPI/internal/repository"
	"AgroShopAPI/internal/services"
	"AgroShopAPI/internal/session"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	root, logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		root = zerolog.New(os.Stderr).With().Timestamp().Logger()
		root.Error().Err(err).Str("file", cfg.LogFile).Msg("log file unavailable, logging to stderr only")
	}
	defer logCloser.Close()
	log := logging.Named(root, "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if err := db.Seed(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	var store session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable")
		}
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("cart sessions in redis")
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		log.Warn().Msg("REDIS_ADDR not set, cart sessions kept in memory")
	}

	var pub events.OrderPublisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		w := events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer w.Close()
		pub = events.NewKafkaPublisher(w)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing order events")
	}

	m := metrics.New(metrics.AppInfo{Name: "agro_shop", Version: cfg.Version, Environment: cfg.Environment})

	// ======================
	// SERVER
	// ======================
	a := newApp(cfg, pool, store, pub, m, root)
	e, err := newServer(a)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("bye")
}

// app holds the wired services the routes are built from.
type app struct {
	cfg      config.Config
	log      zerolog.Logger
	metrics  *metrics.Collector
	products *services.ProductService
	orders   *services.OrderService
	carts    *services.CartService
	auth     *services.AuthService
	stats    *services.StatsService
}

func newApp(cfg config.Config, pool repository.DB, store session.Store, pub events.OrderPublisher, m *metrics.Collector, root zerolog.Logger) app {
	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	// ======================
	// SERVICES
	// ======================
	productSvc := services.NewProductService(productRepo, m)
	orderSvc := services.NewOrderService(pool, orderRepo, productRepo, pub, m, logging.Named(root, "orders"))
	cartSvc := services.NewCartService(store, productRepo, orderSvc, m, logging.Named(root, "cart"))
	authSvc := services.NewAuthService(adminRepo)
	statsSvc := services.NewStatsService(productRepo, orderRepo, m)

	return app{
		cfg:      cfg,
		log:      root,
		metrics:  m,
		products: productSvc,
		orders:   orderSvc,
		carts:    cartSvc,
		auth:     authSvc,
		stats:    statsSvc,
	}
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/auth"
	"github.com/niklaus/b2b-portal/internal/modules/backoffice"
	"github.com/niklaus/b2b-portal/internal/modules/cart"
	"github.com/niklaus/b2b-portal/internal/modules/catalog"
	"github.com/niklaus/b2b-portal/internal/modules/news"
	"github.com/niklaus/b2b-portal/internal/modules/order"
	"github.com/niklaus/b2b-portal/internal/modules/payment"
	"github.com/niklaus/b2b-portal/internal/modules/session"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/modules/tray"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
	"github.com/niklaus/b2b-portal/internal/platform/cache"
	"github.com/niklaus/b2b-portal/internal/platform/config"
	"github.com/niklaus/b2b-portal/internal/platform/database"
	"github.com/niklaus/b2b-portal/internal/platform/httpx"
	"github.com/niklaus/b2b-portal/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "niklaus-b2b-portal")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zl.Sync()
	zap.ReplaceGlobals(zl)

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

// repositories groups the entity stores picked by STORAGE_DRIVER.
type repositories struct {
	accounts account.Repository
	units    unit.Repository
	products catalog.Repository
	orders   order.Repository
}

func openRepositories(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*repositories, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		zl.Info("using in-memory storage")
		return &repositories{
			accounts: account.NewMemoryRepository(),
			units:    unit.NewMemoryRepository(),
			products: catalog.NewMemoryRepository(),
			orders:   order.NewMemoryRepository(),
		}, func() {}, nil
	}

	db, err := database.Open(ctx, database.Options{URL: cfg.DatabaseURL, MaxConns: cfg.DBMaxConns, MaxIdle: cfg.DBMaxIdle})
	if err != nil {
		return nil, nil, err
	}
	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		zl.Info("database migrations applied")
	}
	return postgresRepositories(db), func() { db.Close() }, nil
}

func postgresRepositories(db *sql.DB) *repositories {
	return &repositories{
		accounts: account.NewPostgresRepository(db),
		units:    unit.NewPostgresRepository(db),
		products: catalog.NewPostgresRepository(db),
		orders:   order.NewPostgresRepository(db),
	}
}

func openSessionStores(ctx context.Context, cfg *config.Config, zl *zap.Logger) (session.Store, cart.Store, func(), error) {
	if cfg.SessionDriver == config.SessionMemory {
		zl.Info("using in-memory sessions")
		return session.NewMemoryStore(cfg.SessionTTL), cart.NewMemoryStore(cfg.CartTTL), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		return nil, nil, nil, err
	}
	zl.Info("using redis sessions", zap.String("addr", cfg.RedisAddr))
	return session.NewRedisStore(client, cfg.SessionTTL), cart.NewRedisStore(client, cfg.CartTTL), func() { client.Close() }, nil
}

func run(cfg *config.Config, zl *zap.Logger) error {
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, closeRepos, err := openRepositories(startCtx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeRepos()

	sessions, carts, closeSessions, err := openSessionStores(startCtx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeSessions()

	// ── Identity ────────────────────────────────────────────
	accountService := account.NewService(repos.accounts, zl.Named("account"))
	unitService := unit.NewService(repos.units, zl.Named("unit"))

	// ── Catalog & Cart ──────────────────────────────────────
	catalogService := catalog.NewService(repos.products, zl.Named("catalog"))
	cartService := cart.NewService(carts, catalogService, zl.Named("cart"))

	authService := auth.NewService(
		accountService,
		unitService,
		sessions,
		cartService,
		auth.NewTokens(cfg.JWTSecret, cfg.SessionTTL),
		zl.Named("auth"),
	)
	guard := auth.NewGuard(authService)

	// ── Orders & Payments ───────────────────────────────────
	gateway := payment.NewSandboxGateway(cfg.CheckoutBaseURL, cfg.SandboxDelay)
	orderService := order.NewService(repos.orders, order.NewAssembler(gateway), cartService, cfg.OrderSubmitTimeout, zl.Named("order"))

	// ── Backoffice ──────────────────────────────────────────
	var trayClient tray.Client
	if cfg.TraySandbox {
		trayClient = tray.NewSandboxClient(cfg.SandboxDelay)
	} else {
		trayClient = tray.NewClient(cfg.TrayAPIURL, cfg.TrayAPIToken, cfg.TrayTimeout, zl.Named("tray"))
	}
	backofficeService := backoffice.NewService(accountService, unitService, catalogService, trayClient, zl.Named("backoffice"))

	if cfg.SeedOnBoot {
		if !cfg.IsDevelopment() {
			zl.Warn("seeding demo records outside development", zap.String("env", cfg.Env))
		}
		if _, err := backofficeService.SeedMissing(startCtx); err != nil {
			return fmt.Errorf("seed on boot: %w", err)
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := httpx.NewRouter(zl.Named("http"))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	tier.NewHandler().RegisterRoutes(router)
	auth.NewHandler(authService, guard).RegisterRoutes(router)
	account.NewHandler(accountService, guard).RegisterRoutes(router)
	unit.NewHandler(unitService, guard).RegisterRoutes(router)
	catalog.NewHandler(catalogService, guard).RegisterRoutes(router)
	cart.NewHandler(cartService, guard).RegisterRoutes(router)
	order.NewHandler(orderService, guard).RegisterRoutes(router)
	news.NewHandler(news.NewStaticFeed(), guard).RegisterRoutes(router)
	backoffice.NewHandler(backofficeService, guard).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownDone := make(chan error, 1)
	go func() {
		<-sigChan
		zl.Info("received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownDone <- srv.Shutdown(ctx)
	}()

	zl.Info("niklaus b2b portal starting",
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.StorageDriver),
		zap.String("sessions", cfg.SessionDriver))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	zl.Info("server stopped")
	return nil
}

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recycletrack-api/internal/cache"
	"recycletrack-api/internal/config"
	"recycletrack-api/internal/handler"
	"recycletrack-api/internal/middleware"
	"recycletrack-api/internal/repository"
	"recycletrack-api/internal/router"
	"recycletrack-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting RecycleTrack API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize core repositories based on config
	var (
		catalogRepo repository.CatalogRepository
		ledgerRepo  repository.LedgerRepository
		boardRepo   repository.LeaderboardRepository
		accountRepo repository.AccountRepository
	)

	switch cfg.Store.Type {
	case "sqlite":
		db, err := repository.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		defer db.Close()
		catalogRepo = repository.NewSQLiteCatalogRepository(db)
		ledgerRepo = repository.NewSQLiteLedgerRepository(db)
		boardRepo = repository.NewSQLiteLeaderboardRepository(db)
		accountRepo = repository.NewSQLiteAccountRepository(db)
		log.Println("SQLite repositories initialized")
	default: // memory
		catalogRepo = repository.NewMemoryCatalogRepository()
		ledgerRepo = repository.NewMemoryLedgerRepository()
		boardRepo = repository.NewMemoryLeaderboardRepository()
		accountRepo = repository.NewMemoryAccountRepository()
		log.Println("In-memory repositories initialized")
	}

	// Optional PostgreSQL override for the ledger
	if cfg.Store.LedgerType == "postgres" || cfg.Store.LedgerType == "postgresql" {
		pgRepo, err := repository.NewPostgresLedgerRepository(cfg.Store.PostgresDSN())
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL ledger: %v", err)
		}
		defer pgRepo.Close()
		ledgerRepo = pgRepo
		log.Println("PostgreSQL ledger repository initialized")
	}

	// Optional MySQL override for the account directory
	if cfg.AccountDB.Type == "mysql" {
		mysqlDB, err := sql.Open("mysql", cfg.AccountDB.DSN())
		if err != nil {
			log.Printf("Warning: MySQL connection failed: %v", err)
		} else {
			mysqlDB.SetMaxOpenConns(10)
			mysqlDB.SetMaxIdleConns(5)
			mysqlDB.SetConnMaxLifetime(5 * time.Minute)

			if err := mysqlDB.Ping(); err != nil {
				log.Printf("Warning: MySQL ping failed: %v", err)
				mysqlDB.Close()
			} else {
				defer mysqlDB.Close()
				mysqlRepo := repository.NewMySQLAccountRepository(mysqlDB)
				if err := mysqlRepo.EnsureSchema(context.Background()); err != nil {
					log.Fatalf("Failed to create MySQL schema: %v", err)
				}
				accountRepo = mysqlRepo
				log.Println("MySQL account repository initialized")
			}
		}
	}

	// Initialize cache (sessions + leaderboard rank cache)
	var appCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			appCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			appCache = redisCache
			log.Println("Redis cache initialized")
		}
	default: // memory
		appCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}

	// Initialize services
	boardService := service.NewLeaderboardService(boardRepo, appCache)
	statsService := service.NewStatsService(ledgerRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	recyclingService := service.NewRecyclingService(catalogRepo, ledgerRepo, statsService, boardService)
	accountService := service.NewAccountService(accountRepo, boardService)
	sessionService := service.NewSessionService(appCache, cfg.App.SessionTTL)

	// Bootstrap seed
	if cfg.Seed.Enabled {
		seeder := service.NewSeeder(catalogRepo, ledgerRepo, accountService, boardService, recyclingService)
		if err := seeder.Run(context.Background()); err != nil {
			log.Fatalf("Bootstrap seed failed: %v", err)
		}
	}

	// Reconciliation scheduler
	if cfg.Reconcile.Enabled {
		scheduler := service.NewReconcileScheduler(recyclingService, service.ReconcileConfig{
			Interval: cfg.Reconcile.Interval,
		})
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Initialize handlers
	healthHandler := handler.New()
	authHandler := handler.NewAuthHandler(accountService, sessionService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	scanHandler := handler.NewScanHandler(recyclingService)
	statsHandler := handler.NewStatsHandler(recyclingService)
	leaderboardHandler := handler.NewLeaderboardHandler(boardService)
	adminHandler := handler.NewAdminHandler(ledgerRepo, catalogRepo, boardRepo, cfg.Store.Type)

	// Create auth middleware with injected dependencies (NO GLOBALS!)
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Sessions: sessionService,
	})

	// Create router
	r := router.New(router.Config{
		Handler:            healthHandler,
		AuthHandler:        authHandler,
		CatalogHandler:     catalogHandler,
		ScanHandler:        scanHandler,
		StatsHandler:       statsHandler,
		LeaderboardHandler: leaderboardHandler,
		AdminHandler:       adminHandler,
		AuthMiddleware:     authMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

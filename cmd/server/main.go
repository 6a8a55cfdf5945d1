package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/smartsales/backend/internal/application/catalog"
	identityapp "github.com/smartsales/backend/internal/application/identity"
	partnerapp "github.com/smartsales/backend/internal/application/partner"
	searchapp "github.com/smartsales/backend/internal/application/search"
	tradeapp "github.com/smartsales/backend/internal/application/trade"
	"github.com/smartsales/backend/internal/infrastructure/auth"
	"github.com/smartsales/backend/internal/infrastructure/config"
	"github.com/smartsales/backend/internal/infrastructure/llm"
	"github.com/smartsales/backend/internal/infrastructure/logger"
	"github.com/smartsales/backend/internal/infrastructure/persistence"
	"github.com/smartsales/backend/internal/infrastructure/storage"
	"github.com/smartsales/backend/internal/interfaces/http/handler"
	"github.com/smartsales/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SmartSales backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)

	uploads, err := storage.NewLocalUploadStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal("Failed to initialize upload store", zap.Error(err))
	}

	var generator llm.Generator
	if cfg.LLM.APIKey != "" {
		generator, err = llm.NewGroqGenerator(cfg.LLM)
		if err != nil {
			log.Fatal("Failed to initialize LLM client", zap.Error(err))
		}
	} else {
		log.Warn("No LLM API key configured, search will return canned responses")
		generator = &llm.MockGenerator{Reply: "Search is not configured on this server."}
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	searchRepo := persistence.NewGormSearchRepository(db.DB)
	txRunner := persistence.NewGormTxRunner(db.DB)
	querier := persistence.NewReadOnlyQuerier(db.DB)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService)
	clientService := partnerapp.NewClientService(clientRepo)
	productService := catalogapp.NewProductService(productRepo)
	orderService := tradeapp.NewOrderService(orderRepo, clientRepo, txRunner)
	searchService := searchapp.NewSearchService(generator, querier, searchRepo)

	// HTTP
	engine, err := router.New(cfg, log, jwtService, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Client:  handler.NewClientHandler(clientService),
		Product: handler.NewProductHandler(productService, uploads, cfg.Upload.MaxFileSize),
		Order:   handler.NewOrderHandler(orderService),
		Search:  handler.NewSearchHandler(searchService),
		System:  handler.NewSystemHandler(db),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}

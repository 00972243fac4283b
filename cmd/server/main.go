package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcheckout "github.com/cafepos/backend/internal/application/checkout"
	"github.com/cafepos/backend/internal/infrastructure/auth"
	"github.com/cafepos/backend/internal/infrastructure/cartstore"
	"github.com/cafepos/backend/internal/infrastructure/config"
	"github.com/cafepos/backend/internal/infrastructure/gateway"
	"github.com/cafepos/backend/internal/infrastructure/logger"
	"github.com/cafepos/backend/internal/infrastructure/payment"
	"github.com/cafepos/backend/internal/interfaces/http/handler"
	"github.com/cafepos/backend/internal/interfaces/http/middleware"
	"github.com/cafepos/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Cart and pending-checkout store (Redis, in-memory fallback outside
	// production)
	storeFactory := cartstore.NewFactory(cfg.Redis, cfg.Checkout,
		cartstore.WithLogger(log),
		cartstore.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	store, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize cart store", zap.Error(err))
	}

	// Upstream REST gateways (catalog, sales, payment intents)
	upstream := gateway.NewClient(cfg.Upstream, log)
	catalog := gateway.NewProductGateway(upstream)
	sales := gateway.NewSaleGateway(upstream)
	intents := gateway.NewPaymentIntentGateway(upstream)

	// Payment provider verifier for the hosted flow
	verifier, err := payment.NewStripeVerifier(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize payment verifier", zap.Error(err))
	}

	// Auth services
	jwtService := auth.NewJWTService(cfg.JWT)
	users := auth.NewContextUserProvider()

	// Application services
	cartService := appcheckout.NewCartService(store, catalog)
	reconciler := appcheckout.NewStockReconciler(catalog, log)
	checkoutService := appcheckout.NewCheckoutService(
		store, store, users, sales, intents, verifier, reconciler, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router with custom middleware
	engine := gin.New()

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	healthHandler := handler.NewHealthHandler(version)
	engine.GET("/health", healthHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Every cart and checkout route requires an authenticated session; the
	// session identity is the JWT subject.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Rate limiting per cart session (if enabled). Runs after auth so the
	// budget is keyed by the same identity the cart store uses.
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		r.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	r.Register(healthHandler).
		Register(handler.NewCatalogHandler(catalog)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewSalesHandler(checkoutService))
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendazap/internal/checkout"
	"vendazap/internal/config"
	"vendazap/internal/database"
	"vendazap/internal/gateway"
	"vendazap/internal/handlers"
	"vendazap/internal/intent"
	"vendazap/internal/middleware"
	"vendazap/internal/nlu"
	"vendazap/internal/payment"
	"vendazap/internal/repositories"
	"vendazap/internal/store"
	"vendazap/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// =========================================================================
	// Load configuration
	// =========================================================================
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================
	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// =========================================================================
	// Audit store (optional - the bridge is stateless without it)
	// =========================================================================
	auditStore := store.NewNoop()
	var auditHandler *handlers.AuditHandler

	if cfg.Database.Enabled() {
		db, err := database.NewConnection(&cfg.Database, log)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close(db)

		if cfg.App.IsDevelopment() {
			if err := database.AutoMigrate(db); err != nil {
				log.Warn("auto migrate failed", zap.Error(err))
			} else {
				log.Info("database auto migration completed")
			}
		}

		messageRepo := repositories.NewMessageLogRepository(db)
		paymentRepo := repositories.NewPaymentLogRepository(db)
		auditStore = store.New(messageRepo, paymentRepo, log)
		auditHandler = handlers.NewAuditHandler(messageRepo, paymentRepo, log)

		log.Info("audit store initialized")
	} else {
		log.Warn("database not configured, audit log disabled")
	}

	// =========================================================================
	// External service clients
	// =========================================================================
	gatewayClient := gateway.NewClient(&cfg.Gateway, log)
	nluClient := nlu.NewClient(&cfg.NLU, log)
	pixClient := payment.NewPixClient(cfg.Payment.PixURL, log)
	boletoClient := payment.NewBoletoClient(cfg.Payment.BoletoURL, log)

	log.Info("service clients initialized")

	// =========================================================================
	// Checkout builder + payment router + intent dispatch
	// =========================================================================
	checkoutBuilder := checkout.NewBuilder(&cfg.Payment)
	paymentRouter := payment.NewRouter(
		checkoutBuilder,
		pixClient,
		boletoClient,
		&cfg.Payment,
		auditStore,
		log,
	)

	registry := intent.NewDefaultRegistry(paymentRouter, cfg.Payment.ProductTitle, log)

	log.Info("intent registry initialized", zap.Int("handlers", registry.Count()))

	// =========================================================================
	// Handlers
	// =========================================================================
	gatewayWebhook := handlers.NewGatewayWebhookHandler(
		nluClient,
		gatewayClient,
		auditStore,
		cfg.Gateway.FromNumber,
		cfg.Gateway.AuthToken,
		cfg.Gateway.ValidateSignature,
		log,
	)
	fulfillmentWebhook := handlers.NewFulfillmentWebhookHandler(registry, log)

	log.Info("handlers initialized")

	// =========================================================================
	// Gin router
	// =========================================================================
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS([]string{"*"}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.App.Name,
			"audit_log": auditStore.Enabled(),
		})
	})

	// =========================================================================
	// Routes
	// =========================================================================
	api := router.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// Webhooks (public - called by the gateway and the NLU platform)
		gatewayWebhook.RegisterRoutes(api)
		fulfillmentWebhook.RegisterRoutes(api)

		// Audit log (only when the database is configured)
		if auditHandler != nil {
			auditHandler.RegisterRoutes(api)
		}
	}

	log.Info("routes registered",
		zap.Strings("endpoints", []string{
			"/api/v1/webhook/gateway",
			"/api/v1/webhook/fulfillment",
			"/api/v1/messages",
			"/api/v1/payments",
		}),
	)

	// =========================================================================
	// HTTP server
	// =========================================================================
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/championmethod/funnel-platform/cmd/awsconf"
	"github.com/championmethod/funnel-platform/internal/api/router"
	"github.com/championmethod/funnel-platform/internal/app/bootstrap"
	"github.com/championmethod/funnel-platform/internal/checkout"
	appconfig "github.com/championmethod/funnel-platform/internal/config"
	"github.com/championmethod/funnel-platform/internal/content"
	"github.com/championmethod/funnel-platform/internal/leads"
	"github.com/championmethod/funnel-platform/internal/notify"
	"github.com/championmethod/funnel-platform/internal/observability/metrics"
	"github.com/championmethod/funnel-platform/internal/qualification"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

func main() {
	// Load configuration
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting funnel-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	funnelMetrics := metrics.NewFunnelMetrics(registry)

	// Infrastructure, degrading to in-memory when unavailable
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	pool := bootstrap.BuildDatabasePool(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	ordersRepo := bootstrap.BuildOrderRepository(pool, logger)
	leadsRepo := bootstrap.BuildLeadRepository(pool, logger)
	sessionStore := bootstrap.BuildSessionStore(redisClient, cfg)
	transcriptStore := qualification.NewTranscriptStore(redisClient, cfg.QualificationTTL)
	purchaseStore := checkout.NewPurchaseStore(redisClient, cfg.PurchaseTTL)

	// Email: SES when a from-address is configured, otherwise log-only
	var emailSender notify.EmailSender
	if cfg.EmailFromAddress != "" {
		awsCfg, err := awsconf.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
	} else {
		logger.Warn("no email from-address configured, purchase confirmations will only be logged")
		emailSender = notify.NewStubEmailSender(logger)
	}

	catalog, err := content.Load()
	if err != nil {
		logger.Error("failed to load content catalog", "error", err)
		os.Exit(1)
	}

	// Initialize handlers
	processor := checkout.NewProcessor(cfg.ProcessingDelay, logger)
	checkoutHandler := checkout.NewHandler(processor, purchaseStore, ordersRepo, emailSender, funnelMetrics, cfg.OfferPriceCents, logger)
	qualificationService := qualification.NewService(sessionStore, transcriptStore, funnelMetrics, logger)
	qualificationHandler := qualification.NewHandler(qualificationService, qualification.WidgetJS, cfg.TypingDelay, logger)
	leadsHandler := leads.NewHandler(leadsRepo, logger)
	contentHandler := content.NewHandler(catalog, cfg.OfferWindow, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:               logger,
		CheckoutHandler:      checkoutHandler,
		QualificationHandler: qualificationHandler,
		LeadsHandler:         leadsHandler,
		ContentHandler:       contentHandler,
		MetricsHandler:       promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		RateLimitPerSecond:   cfg.RateLimitPerSecond,
		RateLimitBurst:       cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Tengoku18/thirft-verse-sub001/internal/app/background"
	"github.com/Tengoku18/thirft-verse-sub001/internal/config"
	httpapi "github.com/Tengoku18/thirft-verse-sub001/internal/delivery/http"
	"github.com/Tengoku18/thirft-verse-sub001/internal/gateway"
	publisher "github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/kafka"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/metrics"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/migrate"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/postgres/repository"
	"github.com/Tengoku18/thirft-verse-sub001/internal/infrastructure/push"
	"github.com/Tengoku18/thirft-verse-sub001/internal/usecase"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repos
	txnRepo := repository.NewDefaultTransactionRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)
	notificationRepo := repository.NewDefaultNotificationRepository(db)
	profileRepo := repository.NewDefaultProfileRepository(db)
	unmatRepo := repository.NewDefaultUnmaterializedPaymentRepository(db)

	// Init metrics
	paymentMetrics := metrics.NewPaymentMetrics()

	// Init kafka publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	kafkaPublisher := publisher.NewDefaultKafkaPublisher(brokers)
	defer kafkaPublisher.Close()
	orderEvents := publisher.NewOrderEventWriter(kafkaPublisher)

	// Init gateway adapters
	esewa := gateway.NewEsewaAdapter(cfg.Esewa.ProductCode, cfg.Esewa.SecretKey)
	fonepay := gateway.NewFonepayAdapter(cfg.Fonepay.MerchantCode, cfg.Fonepay.SecretKey)

	// Init push client
	pushClient := push.NewClient(&cfg.PushService)

	// Init usecases
	checkoutUsecase := usecase.NewDefaultCheckoutUsecase(txnRepo, esewa, fonepay, cfg.Fonepay.ReturnURL)
	verificationUsecase := usecase.NewDefaultVerificationUsecase(txnRepo, esewa, fonepay, paymentMetrics)
	notificationUsecase := usecase.NewDefaultNotificationUsecase(notificationRepo, profileRepo, pushClient, paymentMetrics)
	tokenRegistryUsecase := usecase.NewDefaultTokenRegistryUsecase(profileRepo)

	// Background notification fan-out
	dispatcher := background.NewNotificationDispatcher(notificationUsecase, 256, paymentMetrics)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go dispatcher.Run(ctx)

	materializerUsecase, err := usecase.NewDefaultMaterializerUsecase(
		txnRepo,
		orderRepo,
		unmatRepo,
		orderEvents,
		dispatcher,
		paymentMetrics,
		cfg.KafkaService.Topic,
	)
	if err != nil {
		log.Fatalf("failed to init materializer usecase: %v", err)
	}
	statusUsecase := usecase.NewDefaultOrderStatusUsecase(
		orderRepo,
		orderEvents,
		dispatcher,
		paymentMetrics,
		cfg.KafkaService.Topic,
	)

	// HTTP delivery
	paymentHandler := httpapi.NewPaymentHandler(checkoutUsecase, verificationUsecase, materializerUsecase, cfg.Redirect)
	webhookHandler := httpapi.NewWebhookHandler(statusUsecase, cfg.Webhook.Secret)
	deviceHandler := httpapi.NewDeviceHandler(tokenRegistryUsecase)
	notificationHandler := httpapi.NewNotificationHandler(notificationUsecase)
	reconciliationHandler := httpapi.NewReconciliationHandler(unmatRepo, cfg.Webhook.Secret)

	server := httpapi.NewServer(paymentHandler, webhookHandler, deviceHandler, notificationHandler, reconciliationHandler)

	go func() {
		address := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
		log.Printf("HTTP server started on %s\n", address)
		if err := server.Start(address); err != nil {
			slog.Error("http server stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	if err := server.Shutdown(); err != nil {
		slog.Error("http server shutdown failed", "error", err.Error())
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commencementdepot/storefront-orders-service/internal/cache"
	"github.com/commencementdepot/storefront-orders-service/internal/clients"
	"github.com/commencementdepot/storefront-orders-service/internal/config"
	"github.com/commencementdepot/storefront-orders-service/internal/events"
	"github.com/commencementdepot/storefront-orders-service/internal/handlers"
	"github.com/commencementdepot/storefront-orders-service/internal/logging"
	"github.com/commencementdepot/storefront-orders-service/internal/mail"
	"github.com/commencementdepot/storefront-orders-service/internal/server"
	"github.com/commencementdepot/storefront-orders-service/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New("storefront-orders")

	logging.Infof("Starting storefront-orders on port %d", cfg.Server.Port)

	receiptCache := cache.NewRedisReceiptCache(cfg.Redis)
	defer receiptCache.Close()

	paymentClient := clients.NewHTTPPaymentClient(cfg.Payment, logger)

	mailSender, err := mail.NewSMTPSender(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("Failed to configure SMTP sender", logging.Fields{"error": err.Error()})
	}

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	orderService := service.NewOrderService(
		paymentClient,
		mailSender,
		receiptCache,
		eventPublisher,
		cfg,
	)

	h := handlers.NewHandlers(orderService, cfg)

	srv := server.New(h, cfg)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":                   cfg.Server.Port,
			"enable_receipt_caching": cfg.Features.EnableReceiptCaching,
			"enable_order_events":    cfg.Features.EnableOrderEvents,
		})
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gift-registry-service/internal/client"
	"gift-registry-service/internal/config"
	"gift-registry-service/internal/repository"
	"gift-registry-service/internal/server"
	"gift-registry-service/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSqliteClient(cfg.DatabaseURL)
	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago)

	giftItemRepo := repository.NewGiftItemRepository(db)
	recordRepo := repository.NewPaymentRecordRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	rsvpRepo := repository.NewRSVPRepository(db)

	paymentService := service.NewPaymentService(
		mpClient, cfg,
		giftItemRepo,
		recordRepo,
		webhookEventRepo,
	)
	giftService := service.NewGiftService(giftItemRepo, recordRepo)
	rsvpService := service.NewRSVPService(rsvpRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(paymentService, giftService, rsvpService, cfg.Auth.JWTSecret)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}

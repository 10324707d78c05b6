package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-billing/internal/client"
	"chat-billing/internal/config"
	"chat-billing/internal/repository"
	"chat-billing/internal/server"
	"chat-billing/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
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

	if cfg.Log.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db = client.InitMysqlClient(cfg.DatabaseURL)
	} else {
		// local development runs off a sqlite file
		db = client.InitSqliteClient(cfg.SQLitePath)
	}
	paypalClient := client.NewPaypalClient(&cfg.Paypal)
	braintreeClient := client.NewBraintreeClient(&cfg.Braintree)
	rechargeClient := client.NewRechargeClient(&cfg.Recharge)

	accountRepo := repository.NewAccountRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	friendRequestRepo := repository.NewFriendRequestRepository(db)

	paymentService := service.NewPaymentService(
		accountRepo,
		orderRepo,
		paypalClient,
		braintreeClient,
		rechargeClient,
		log.With().Str("component", "payment").Logger(),
	)
	friendService := service.NewFriendService(friendRequestRepo)
	accountService := service.NewAccountService(accountRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(paymentService, friendService, accountService, cfg.JWT.Secret)

	log.Info().Str("addr", serverAddr).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownTimer := time.AfterFunc(30*time.Second, func() {
		log.Fatal().Msg("shutdown timed out")
	})
	defer shutdownTimer.Stop()

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/config"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/database"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/pricefeed"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Feed configuration is optional: without a fernet key the token store
	// endpoints are simply not mounted.
	var feedConfigService *service.FeedConfigService
	feedToken := ""
	if cfg.PriceFeed.FernetKey != "" {
		feedConfigService, err = service.NewFeedConfigService(db, cfg.PriceFeed.FernetKey, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize feed config service")
		}
		feedToken, err = feedConfigService.GetAPIToken(context.Background())
		if err != nil {
			log.Warn().Err(err).Msg("failed to load stored feed token")
		}
	}
	feed := pricefeed.NewClient(cfg.PriceFeed.BaseURL, feedToken)

	// Create services
	assetService := service.NewAssetService(db, feed, log)
	platformService := service.NewPlatformService(db, log)
	portfolioService := service.NewPortfolioService(db, log)
	transactionService := service.NewTransactionService(db, log)
	positionService := service.NewPositionService(db, log)

	// Schedule the periodic price and exchange-rate refresh
	scheduler := cron.New(cron.WithSeconds())
	if _, err := assetService.ScheduleRefresh(scheduler, cfg.PriceFeed.RefreshSpec, cfg.PriceFeed.BaseCurrency); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.PriceFeed.RefreshSpec).Msg("failed to schedule price refresh")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(db, api.Services{
		Asset:       assetService,
		Platform:    platformService,
		Portfolio:   portfolioService,
		Transaction: transactionService,
		Position:    positionService,
		FeedConfig:  feedConfigService,
	}, cfg, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// Package api assembles the HTTP surface: router, handlers, and middleware.
package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/awicaksono/Invest-Ledger-Backend/internal/api/middleware"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/config"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	Asset       *service.AssetService
	Platform    *service.PlatformService
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Position    *service.PositionService
	FeedConfig  *service.FeedConfigService
}

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svc.Asset)
			r.Get("/", assetHandler.Assets)
			r.Post("/", assetHandler.CreateAsset)
			r.Post("/refresh-prices", assetHandler.RefreshPrices)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", assetHandler.GetAsset)
				r.Put("/", assetHandler.UpdateAsset)
				r.Delete("/", assetHandler.DeleteAsset)
			})
		})

		r.Route("/platform", func(r chi.Router) {
			platformHandler := handlers.NewPlatformHandler(svc.Platform)
			r.Get("/", platformHandler.Platforms)
			r.Post("/", platformHandler.CreatePlatform)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", platformHandler.GetPlatform)
				r.Put("/", platformHandler.UpdatePlatform)
				r.Delete("/", platformHandler.DeletePlatform)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/summary", portfolioHandler.PortfolioSummary)
				r.Get("/allocation", portfolioHandler.Allocation)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/buy", transactionHandler.CreateBuy)
			r.Post("/sell", transactionHandler.CreateSell)
			r.Route("/portfolio/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.TransactionsPerPortfolio)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/transfer", func(r chi.Router) {
			transferHandler := handlers.NewTransferHandler(svc.Transaction)
			r.Post("/", transferHandler.CreateTransfer)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transferHandler.GetTransfer)
				r.Delete("/", transferHandler.DeleteTransfer)
			})
		})

		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svc.Position)
			r.Get("/", positionHandler.AllPositions)
			r.Route("/holding/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.HoldingPosition)
			})
			r.Route("/portfolio/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.PortfolioPositions)
			})
		})

		if svc.FeedConfig != nil {
			r.Route("/feed", func(r chi.Router) {
				feedConfigHandler := handlers.NewFeedConfigHandler(svc.FeedConfig)
				r.Get("/token", feedConfigHandler.TokenStatus)
				r.Put("/token", feedConfigHandler.SetToken)
				r.Delete("/token", feedConfigHandler.ClearToken)
			})
		}
	})

	return r
}

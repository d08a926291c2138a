package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/validation"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionsPerPortfolio handles GET requests to retrieve all transactions for a specific portfolio.
//
// Endpoint: GET /api/transaction/portfolio/{uuid}
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) TransactionsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	transactions, err := h.transactionService.GetTransactionsPerPortfolio(r.Context(), portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// AllTransactions handles GET requests to retrieve all transactions across all portfolios.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactionsPerPortfolio(r.Context(), "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateBuy handles POST requests to record a purchase.
//
// Endpoint: POST /api/transaction/buy
// Request Body: CreateBuyRequest
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or the request body is invalid
// Error: 404 Not Found if the platform, asset, or portfolio does not exist
func (h *TransactionHandler) CreateBuy(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateBuyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateBuy(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	transaction, err := h.transactionService.RecordBuy(r.Context(), service.BuyInput{
		PlatformID:   req.PlatformID,
		AssetID:      req.AssetID,
		PortfolioID:  req.PortfolioID,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Date:         date,
		Currency:     req.Currency,
		ExchangeRate: exchangeRateOrOne(req.ExchangeRate),
	})
	if err != nil {
		respondServiceError(w, err, "failed to record buy")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// CreateSell handles POST requests to record a sale.
//
// Endpoint: POST /api/transaction/sell
// Request Body: CreateSellRequest
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or quantity exceeds the platform position
// Error: 404 Not Found if the holding or platform position does not exist
func (h *TransactionHandler) CreateSell(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateSellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSell(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	transaction, err := h.transactionService.RecordSell(r.Context(), service.SellInput{
		PlatformID:   req.PlatformID,
		HoldingID:    req.HoldingID,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Date:         date,
		Currency:     req.Currency,
		ExchangeRate: exchangeRateOrOne(req.ExchangeRate),
	})
	if err != nil {
		respondServiceError(w, err, "failed to record sell")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Absent fields are left unchanged. Editing a transfer leg updates the whole
// transfer.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
			return
		}
		date = &parsed
	}

	transaction, err := h.transactionService.EditTransaction(r.Context(), transactionID, service.EditInput{
		Quantity:    req.Quantity,
		Price:       req.Price,
		PlatformID:  req.PlatformID,
		PortfolioID: req.PortfolioID,
		Date:        date,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update transaction")
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction and
// reverse its holding effect. Deleting a transfer leg removes the whole
// transfer.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransaction(r.Context(), transactionID); err != nil {
		respondServiceError(w, err, "failed to delete transaction")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// exchangeRateOrOne defaults an absent exchange rate to 1.
func exchangeRateOrOne(rate *decimal.Decimal) decimal.Decimal {
	if rate == nil {
		return decimal.NewFromInt(1)
	}
	return *rate
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/validation"
)

// TransferHandler handles HTTP requests for transfer endpoints.
type TransferHandler struct {
	transactionService *service.TransactionService
}

// NewTransferHandler creates a new TransferHandler with the provided service dependency.
func NewTransferHandler(transactionService *service.TransactionService) *TransferHandler {
	return &TransferHandler{
		transactionService: transactionService,
	}
}

// CreateTransfer handles POST requests to move quantity between portfolios.
// Both legs and the transfer record are created atomically.
//
// Endpoint: POST /api/transfer
// Request Body: CreateTransferRequest
// Response: 201 Created with TransferTransaction
// Error: 400 Bad Request if validation fails, the portfolios are the same, or
// quantity exceeds the platform position
// Error: 404 Not Found if the holding, destination portfolio, or platform
// position does not exist
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransferRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransfer(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	transfer, err := h.transactionService.Transfer(r.Context(), service.TransferInput{
		HoldingID:              req.HoldingID,
		DestinationPortfolioID: req.DestinationPortfolioID,
		PlatformID:             req.PlatformID,
		Quantity:               req.Quantity,
		Date:                   date,
		Currency:               req.Currency,
		ExchangeRate:           exchangeRateOrOne(req.ExchangeRate),
	})
	if err != nil {
		respondServiceError(w, err, "failed to record transfer")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transfer)
}

// GetTransfer handles GET requests to retrieve a transfer record by ID.
//
// Endpoint: GET /api/transfer/{uuid}
// Response: 200 OK with TransferTransaction
// Error: 400 Bad Request if transfer ID is invalid (validated by middleware)
// Error: 404 Not Found if transfer not found
func (h *TransferHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "uuid")

	transfer, err := h.transactionService.GetTransfer(r.Context(), transferID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve transfer")
		return
	}

	response.RespondJSON(w, http.StatusOK, transfer)
}

// DeleteTransfer handles DELETE requests to remove a transfer and both of its
// legs, reversing each holding exactly once.
//
// Endpoint: DELETE /api/transfer/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if transfer ID is invalid (validated by middleware)
// Error: 404 Not Found if transfer not found
func (h *TransferHandler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "uuid")

	if err := h.transactionService.DeleteTransfer(r.Context(), transferID); err != nil {
		respondServiceError(w, err, "failed to delete transfer")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

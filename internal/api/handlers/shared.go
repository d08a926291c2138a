// Package handlers contains the HTTP layer adapters: they parse requests,
// delegate to the service layer, and map service errors onto status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
)

// parseJSON decodes the request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// parseDate parses a YYYY-MM-DD date string. Validation has already checked
// the format; this just converts it.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// notFoundErrors are service sentinels that map to 404.
var notFoundErrors = []error{
	apperrors.ErrAssetNotFound,
	apperrors.ErrPlatformNotFound,
	apperrors.ErrPortfolioNotFound,
	apperrors.ErrHoldingNotFound,
	apperrors.ErrTransactionNotFound,
	apperrors.ErrTransferNotFound,
	apperrors.ErrAccountNotFound,
	apperrors.ErrDestinationHoldingNotFound,
}

// badRequestErrors are service sentinels that map to 400.
var badRequestErrors = []error{
	apperrors.ErrInvalidQuantity,
	apperrors.ErrInvalidPrice,
	apperrors.ErrInsufficientQuantity,
	apperrors.ErrSamePortfolio,
	apperrors.ErrInvalidUUID,
}

// respondServiceError maps a service error onto an HTTP status. Sentinel
// errors carry their own user-facing message; anything unrecognized is a 500
// with the given fallback message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			response.RespondError(w, http.StatusNotFound, sentinel.Error(), err.Error())
			return
		}
	}
	for _, sentinel := range badRequestErrors {
		if errors.Is(err, sentinel) {
			response.RespondError(w, http.StatusBadRequest, sentinel.Error(), err.Error())
			return
		}
	}
	if errors.Is(err, apperrors.ErrDuplicateEntry) {
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
		return
	}
	if errors.Is(err, apperrors.ErrMissingCostBasis) || errors.Is(err, apperrors.ErrDataInconsistency) {
		response.RespondError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
}

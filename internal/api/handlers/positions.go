package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
)

// PositionHandler handles position-related HTTP requests. Positions are
// derived from the ledger on every request; there is no stored state behind
// these endpoints.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// HoldingPosition handles GET requests for one holding's consolidated
// position and per-platform breakdown. A missing holding yields an empty
// position, not a 404.
//
// Endpoint: GET /api/position/holding/{uuid}
// Response: 200 OK with HoldingPosition
// Error: 400 Bad Request if holding ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if computation fails
func (h *PositionHandler) HoldingPosition(w http.ResponseWriter, r *http.Request) {
	holdingID := chi.URLParam(r, "uuid")

	position, err := h.positionService.GetHoldingPosition(r.Context(), holdingID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// PortfolioPositions handles GET requests for every holding position in a
// portfolio.
//
// Endpoint: GET /api/position/portfolio/{uuid}
// Response: 200 OK with array of HoldingPosition
// Error: 400 Bad Request if portfolio ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if computation fails
func (h *PositionHandler) PortfolioPositions(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	positions, err := h.positionService.GetPortfolioPositions(r.Context(), portfolioID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// AllPositions handles GET requests for holding positions across every
// portfolio.
//
// Endpoint: GET /api/position
// Response: 200 OK with array of HoldingPosition
// Error: 500 Internal Server Error if computation fails
func (h *PositionHandler) AllPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionService.GetPortfolioPositions(r.Context(), "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToComputePosition.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

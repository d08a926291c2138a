package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/model"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to list portfolios. Inactive portfolios are
// included when the include_inactive query parameter is "true".
//
// Endpoint: GET /api/portfolio?include_inactive=true
// Response: 200 OK with array of Portfolio
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	filter := model.PortfolioFilter{
		IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
	}

	portfolios, err := h.portfolioService.GetPortfolios(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolios.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio by ID.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with Portfolio
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve portfolio")
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a new portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest
// Response: 201 Created with Portfolio
// Error: 400 Bad Request if validation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), service.PortfolioInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		IsActive:     isActive,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create portfolio")
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to rewrite a portfolio's fields.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest
// Response: 200 OK with updated Portfolio
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), portfolioID, service.PortfolioInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update portfolio")
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio. Its holdings
// and transactions are removed with it.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	if err := h.portfolioService.DeletePortfolio(r.Context(), portfolioID); err != nil {
		respondServiceError(w, err, "failed to delete portfolio")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// PortfolioSummary handles GET requests for a portfolio's aggregate valuation.
//
// Endpoint: GET /api/portfolio/{uuid}/summary
// Response: 200 OK with PortfolioSummary
// Error: 404 Not Found if portfolio not found
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) PortfolioSummary(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	summary, err := h.portfolioService.GetPortfolioSummary(r.Context(), portfolioID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToGetPortfolioSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Allocation handles GET requests for a portfolio's market value breakdown.
// The by query parameter selects the dimension: "type" (default) or
// "platform". An empty portfolio segment aggregates all portfolios.
//
// Endpoint: GET /api/portfolio/{uuid}/allocation?by=platform
// Response: 200 OK with array of AllocationSlice
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	var slices []model.AllocationSlice
	var err error
	switch r.URL.Query().Get("by") {
	case "platform":
		slices, err = h.portfolioService.GetAllocationByPlatform(r.Context(), portfolioID)
	case "", "type":
		slices, err = h.portfolioService.GetAllocationByType(r.Context(), portfolioID)
	default:
		response.RespondError(w, http.StatusBadRequest, "invalid allocation dimension", r.URL.Query().Get("by"))
		return
	}
	if err != nil {
		respondServiceError(w, err, "failed to compute allocation")
		return
	}

	response.RespondJSON(w, http.StatusOK, slices)
}

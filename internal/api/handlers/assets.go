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

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to list all registered assets.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single asset by ID.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if asset not found
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.assetService.GetAsset(r.Context(), assetID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve asset")
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to register a new asset. An initial price
// fetch is attempted; a feed failure leaves the price at zero.
//
// Endpoint: POST /api/asset
// Request Body: CreateAssetRequest
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), service.AssetInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Type:     model.AssetType(req.Type),
		Currency: req.Currency,
		Country:  req.Country,
	})
	if err != nil {
		respondServiceError(w, err, "failed to create asset")
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to rewrite an asset's reference fields.
//
// Endpoint: PUT /api/asset/{uuid}
// Request Body: UpdateAssetRequest
// Response: 200 OK with updated Asset
// Error: 404 Not Found if asset not found
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(r.Context(), assetID, service.AssetInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Type:     model.AssetType(req.Type),
		Currency: req.Currency,
		Country:  req.Country,
	})
	if err != nil {
		respondServiceError(w, err, "failed to update asset")
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove an asset.
//
// Endpoint: DELETE /api/asset/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if asset not found
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(r.Context(), assetID); err != nil {
		respondServiceError(w, err, "failed to delete asset")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices handles POST requests to refresh every asset's last price
// from the external feed. Runs synchronously; the response reflects the
// refreshed state.
//
// Endpoint: POST /api/asset/refresh-prices
// Response: 200 OK with array of Asset carrying the new prices
// Error: 500 Internal Server Error if every fetch failed
func (h *AssetHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.RefreshPrices(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshPrices.Error(), err.Error())
		return
	}

	assets, err := h.assetService.GetAssets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

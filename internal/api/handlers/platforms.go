package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/apperrors"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/validation"
)

// PlatformHandler handles platform-related HTTP requests
type PlatformHandler struct {
	platformService *service.PlatformService
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(platformService *service.PlatformService) *PlatformHandler {
	return &PlatformHandler{
		platformService: platformService,
	}
}

// Platforms handles GET requests to list all platforms.
//
// Endpoint: GET /api/platform
// Response: 200 OK with array of Platform
func (h *PlatformHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.platformService.GetPlatforms(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePlatforms.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, platforms)
}

// GetPlatform handles GET requests to retrieve a single platform by ID.
//
// Endpoint: GET /api/platform/{uuid}
// Response: 200 OK with Platform
// Error: 404 Not Found if platform not found
func (h *PlatformHandler) GetPlatform(w http.ResponseWriter, r *http.Request) {
	platformID := chi.URLParam(r, "uuid")

	platform, err := h.platformService.GetPlatform(r.Context(), platformID)
	if err != nil {
		respondServiceError(w, err, "failed to retrieve platform")
		return
	}

	response.RespondJSON(w, http.StatusOK, platform)
}

// CreatePlatform handles POST requests to register a new platform.
//
// Endpoint: POST /api/platform
// Request Body: CreatePlatformRequest
// Response: 201 Created with Platform
// Error: 400 Bad Request if validation fails
func (h *PlatformHandler) CreatePlatform(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePlatformRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePlatform(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	platform, err := h.platformService.CreatePlatform(r.Context(), req.Name)
	if err != nil {
		respondServiceError(w, err, "failed to create platform")
		return
	}

	response.RespondJSON(w, http.StatusCreated, platform)
}

// UpdatePlatform handles PUT requests to rename a platform.
//
// Endpoint: PUT /api/platform/{uuid}
// Request Body: UpdatePlatformRequest
// Response: 200 OK with updated Platform
// Error: 404 Not Found if platform not found
func (h *PlatformHandler) UpdatePlatform(w http.ResponseWriter, r *http.Request) {
	platformID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePlatformRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePlatform(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	platform, err := h.platformService.UpdatePlatform(r.Context(), platformID, req.Name)
	if err != nil {
		respondServiceError(w, err, "failed to update platform")
		return
	}

	response.RespondJSON(w, http.StatusOK, platform)
}

// DeletePlatform handles DELETE requests to remove a platform.
//
// Endpoint: DELETE /api/platform/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if platform not found
func (h *PlatformHandler) DeletePlatform(w http.ResponseWriter, r *http.Request) {
	platformID := chi.URLParam(r, "uuid")

	if err := h.platformService.DeletePlatform(r.Context(), platformID); err != nil {
		respondServiceError(w, err, "failed to delete platform")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

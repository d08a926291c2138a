package handlers

import (
	"net/http"

	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/request"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/api/response"
	"github.com/awicaksono/Invest-Ledger-Backend/internal/service"
)

// FeedConfigHandler handles price feed configuration requests. The API token
// is stored encrypted and never echoed back in full.
type FeedConfigHandler struct {
	feedConfigService *service.FeedConfigService
}

// NewFeedConfigHandler creates a new FeedConfigHandler
func NewFeedConfigHandler(feedConfigService *service.FeedConfigService) *FeedConfigHandler {
	return &FeedConfigHandler{
		feedConfigService: feedConfigService,
	}
}

// FeedTokenResponse reports whether a feed token is configured.
type FeedTokenResponse struct {
	Configured bool `json:"configured"`
}

// SetToken handles PUT requests to store the feed API token.
//
// Endpoint: PUT /api/feed/token
// Request Body: SetFeedTokenRequest
// Response: 204 No Content
// Error: 400 Bad Request if the request body is invalid or the token is empty
func (h *FeedConfigHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetFeedTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Token == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.feedConfigService.SetAPIToken(r.Context(), req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store feed token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// TokenStatus handles GET requests to check whether a feed token is stored.
// The token itself is never returned.
//
// Endpoint: GET /api/feed/token
// Response: 200 OK with FeedTokenResponse
func (h *FeedConfigHandler) TokenStatus(w http.ResponseWriter, r *http.Request) {
	token, err := h.feedConfigService.GetAPIToken(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read feed token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, FeedTokenResponse{Configured: token != ""})
}

// ClearToken handles DELETE requests to remove the stored feed token.
//
// Endpoint: DELETE /api/feed/token
// Response: 204 No Content
func (h *FeedConfigHandler) ClearToken(w http.ResponseWriter, r *http.Request) {
	if err := h.feedConfigService.ClearAPIToken(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear feed token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

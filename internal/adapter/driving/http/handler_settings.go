package httphandler

import (
	"net/http"
)

// GetAPIKeyStatus reports whether an API key is stored. The key itself is
// never returned.
func (h *Handler) GetAPIKeyStatus(w http.ResponseWriter, r *http.Request) {
	has, err := h.credentials.HasAPIKey(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "failed to check api key", err)
		return
	}

	writeJSON(w, http.StatusOK, APIKeyStatusResponse{HasKey: has})
}

// SaveAPIKey validates the key against the provider and stores it encrypted.
func (h *Handler) SaveAPIKey(w http.ResponseWriter, r *http.Request) {
	var req SaveAPIKeyRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.credentials.Register(r.Context(), req.APIKey); err != nil {
		h.writeServiceError(w, r, "failed to save api key", err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteAPIKey removes the stored key. Deleting when nothing is stored
// succeeds.
func (h *Handler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	if _, err := h.credentials.RemoveAPIKey(r.Context()); err != nil {
		h.writeServiceError(w, r, "failed to delete api key", err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

package httphandler

import (
	"net/http"
)

// ListMemos returns every memo, most recently updated first.
func (h *Handler) ListMemos(w http.ResponseWriter, r *http.Request) {
	memos, err := h.memos.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "failed to list memos", err)
		return
	}

	resp := make([]MemoResponse, 0, len(memos))
	for _, m := range memos {
		resp = append(resp, toMemoResponse(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetMemo returns a single memo.
func (h *Handler) GetMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid memo id")
		return
	}

	memo, err := h.memos.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "failed to get memo", err)
		return
	}

	writeJSON(w, http.StatusOK, toMemoResponse(*memo))
}

// CreateMemo stores a new memo and returns its id.
func (h *Handler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.memos.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.writeServiceError(w, r, "failed to create memo", err)
		return
	}

	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// UpdateMemo applies a partial update. At least one field must be present.
func (h *Handler) UpdateMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid memo id")
		return
	}

	var req UpdateMemoRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.memos.Update(r.Context(), id, req.patch()); err != nil {
		h.writeServiceError(w, r, "failed to update memo", err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteMemo removes a memo.
func (h *Handler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid memo id")
		return
	}

	if err := h.memos.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, "failed to delete memo", err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// SummarizeMemo generates a summary with the stored API key, saves it on the
// memo and returns it.
func (h *Handler) SummarizeMemo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMemoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid memo id")
		return
	}

	summary, err := h.summaries.Summarize(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, "failed to summarize memo", err)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{Summary: summary})
}

package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/aimemo/internal/application"
	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

// maxBodyBytes caps request bodies; memos are short text.
const maxBodyBytes = 1 << 20

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	memos       *application.MemoService
	summaries   *application.SummaryService
	credentials *application.CredentialRepository
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	memos *application.MemoService,
	summaries *application.SummaryService,
	credentials *application.CredentialRepository,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		memos:       memos,
		summaries:   summaries,
		credentials: credentials,
		validate:    newValidator(),
		logger:      logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with request id, logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/memos", h.ListMemos)
	mux.HandleFunc("POST /api/memos", h.CreateMemo)
	mux.HandleFunc("GET /api/memos/{id}", h.GetMemo)
	mux.HandleFunc("PUT /api/memos/{id}", h.UpdateMemo)
	mux.HandleFunc("DELETE /api/memos/{id}", h.DeleteMemo)
	mux.HandleFunc("POST /api/memos/{id}/summary", h.SummarizeMemo)

	mux.HandleFunc("GET /api/settings/api-key", h.GetAPIKeyStatus)
	mux.HandleFunc("POST /api/settings/api-key", h.SaveAPIKey)
	mux.HandleFunc("DELETE /api/settings/api-key", h.DeleteAPIKey)

	mux.HandleFunc("GET /api/health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// parseMemoID reads the {id} path value. Only positive integers are ids.
func parseMemoID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeServiceError maps an application error onto a status code. Anything
// unrecognised is logged and answered with a generic 500.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var verr *model.ValidationError

	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "memo not found")
	case errors.Is(err, model.ErrCredentialMissing):
		writeError(w, http.StatusBadRequest, "API key is not configured")
	case errors.Is(err, model.ErrCredentialInvalid):
		writeError(w, http.StatusBadRequest, "invalid API key")
	case errors.Is(err, model.ErrProviderUnreachable):
		h.logger.WarnContext(r.Context(), msg, "error", err, "request_id", requestIDFromContext(r.Context()))
		writeError(w, http.StatusBadGateway, "could not reach the summarization provider")
	case errors.Is(err, model.ErrSummarization):
		writeError(w, http.StatusInternalServerError, "failed to generate summary; check that the API key is valid")
	default:
		h.logger.ErrorContext(r.Context(), msg, "error", err, "request_id", requestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

// CreateMemoRequest is the JSON body for POST /api/memos.
type CreateMemoRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
}

// UpdateMemoRequest is the JSON body for PUT /api/memos/{id}. Absent fields
// are left unchanged.
type UpdateMemoRequest struct {
	Title   *string `json:"title" validate:"omitnil,min=1,max=100"`
	Content *string `json:"content" validate:"omitnil,min=1"`
	Summary *string `json:"summary"`
}

func (r UpdateMemoRequest) patch() model.MemoPatch {
	return model.MemoPatch{Title: r.Title, Content: r.Content, Summary: r.Summary}
}

// SaveAPIKeyRequest is the JSON body for POST /api/settings/api-key.
type SaveAPIKeyRequest struct {
	APIKey string `json:"apiKey" validate:"required"`
}

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate decodes the JSON body into dst and validates it. On
// failure it writes the 400 response and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			h.logger.ErrorContext(r.Context(), "request validation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return false
		}
		writeValidationError(w, toValidationError(verrs))
		return false
	}

	return true
}

func toValidationError(verrs validator.ValidationErrors) *model.ValidationError {
	out := &model.ValidationError{Fields: make([]model.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, model.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

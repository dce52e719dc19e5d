package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the domain, adapters and handlers.
var (
	// ErrNotFound indicates the requested memo does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCredentialMissing indicates no API key has been stored.
	ErrCredentialMissing = errors.New("api key is not configured")

	// ErrCredentialInvalid indicates the provider rejected the API key.
	ErrCredentialInvalid = errors.New("api key was rejected by the provider")

	// ErrSummarization indicates the provider call failed or returned no
	// usable text.
	ErrSummarization = errors.New("failed to generate summary")

	// ErrProviderUnreachable indicates a transport-level failure talking to
	// the LLM provider, as opposed to the provider rejecting a request.
	ErrProviderUnreachable = errors.New("llm provider unreachable")

	// ErrDecryption indicates a ciphertext was not produced by the credential
	// cipher under the current passphrase.
	ErrDecryption = errors.New("decrypt credential")

	// ErrDatabaseUnavailable indicates a store was built without a database
	// handle. It fails the affected request only.
	ErrDatabaseUnavailable = errors.New("database is not initialized")
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input detected before any store call.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StorageError wraps a failure of the underlying database or file.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for op. It returns nil when err
// is nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

package driven

import "context"

// Summarizer defines the driven port for the LLM provider.
type Summarizer interface {
	// ValidateCredential issues a minimal request with apiKey. It returns
	// false, nil when the provider rejects the request and a non-nil error
	// only for transport failures.
	ValidateCredential(ctx context.Context, apiKey string) (bool, error)

	// GenerateSummary returns a short summary of text. Any provider failure
	// or empty response is reported as model.ErrSummarization.
	GenerateSummary(ctx context.Context, apiKey, text string) (string, error)
}

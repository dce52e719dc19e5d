package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// apiKeySource is the slice of CredentialRepository the summary flow needs.
type apiKeySource interface {
	GetAPIKey(ctx context.Context) (string, error)
}

// SummaryService generates a memo summary with the stored API key and saves
// it back onto the memo.
type SummaryService struct {
	memos      driven.MemoStore
	keys       apiKeySource
	summarizer driven.Summarizer
}

// NewSummaryService creates a new SummaryService with the required dependencies.
func NewSummaryService(memos driven.MemoStore, keys *CredentialRepository, summarizer driven.Summarizer) *SummaryService {
	return &SummaryService{memos: memos, keys: keys, summarizer: summarizer}
}

// Summarize summarizes the memo's content, persists the result as a
// summary-only update and returns it.
func (s *SummaryService) Summarize(ctx context.Context, id int64) (string, error) {
	memo, err := s.memos.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get memo %d: %w", id, err)
	}
	if memo == nil {
		return "", fmt.Errorf("memo %d: %w", id, model.ErrNotFound)
	}

	apiKey, err := s.keys.GetAPIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}
	if apiKey == "" {
		return "", model.ErrCredentialMissing
	}

	summary, err := s.summarizer.GenerateSummary(ctx, apiKey, memo.Content)
	if err != nil {
		return "", fmt.Errorf("summarize memo %d: %w", id, err)
	}

	ok, err := s.memos.Update(ctx, id, model.SummaryPatch(summary))
	if err != nil {
		return "", fmt.Errorf("save summary for memo %d: %w", id, err)
	}
	if !ok {
		return "", fmt.Errorf("memo %d: %w", id, model.ErrNotFound)
	}

	return summary, nil
}

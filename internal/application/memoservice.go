package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// MemoService is the use-case layer over the memo store. Store calls that
// report "no such row" are surfaced as model.ErrNotFound.
type MemoService struct {
	store driven.MemoStore
}

// NewMemoService creates a new MemoService with the required dependencies.
func NewMemoService(store driven.MemoStore) *MemoService {
	return &MemoService{store: store}
}

// List returns every memo, most recently updated first.
func (s *MemoService) List(ctx context.Context) ([]model.Memo, error) {
	memos, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	return memos, nil
}

// Get returns one memo or model.ErrNotFound.
func (s *MemoService) Get(ctx context.Context, id int64) (*model.Memo, error) {
	memo, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get memo %d: %w", id, err)
	}
	if memo == nil {
		return nil, fmt.Errorf("memo %d: %w", id, model.ErrNotFound)
	}
	return memo, nil
}

// Create stores a new memo and returns its id.
func (s *MemoService) Create(ctx context.Context, title, content string) (int64, error) {
	id, err := s.store.Create(ctx, title, content)
	if err != nil {
		return 0, fmt.Errorf("create memo: %w", err)
	}
	return id, nil
}

// Update applies patch to the memo. An empty patch is rejected as a
// validation error before touching the store.
func (s *MemoService) Update(ctx context.Context, id int64, patch model.MemoPatch) error {
	if patch.IsEmpty() {
		return model.NewValidationError("body", "at least one of title, content or summary is required")
	}

	ok, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("update memo %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("memo %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// Delete removes the memo or returns model.ErrNotFound.
func (s *MemoService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete memo %d: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("memo %d: %w", id, model.ErrNotFound)
	}
	return nil
}

// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

// MemoStore defines the driven port for memo persistence. The embedded
// (SQLite) and managed (PostgreSQL) adapters must produce identical rows for
// the same sequence of calls.
type MemoStore interface {
	// ListAll returns every memo ordered by UpdatedAt, newest first.
	ListAll(ctx context.Context) ([]model.Memo, error)

	// GetByID returns the memo with the given id, or (nil, nil) if absent.
	GetByID(ctx context.Context, id int64) (*model.Memo, error)

	// Create inserts a memo with server-assigned timestamps and no summary,
	// returning its id.
	Create(ctx context.Context, title, content string) (int64, error)

	// Update applies the present fields of patch and refreshes UpdatedAt.
	// Returns false when the patch is empty or the memo does not exist.
	Update(ctx context.Context, id int64, patch model.MemoPatch) (bool, error)

	// Remove deletes the memo. Returns false if it did not exist.
	Remove(ctx context.Context, id int64) (bool, error)
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MemoStore = (*MemoRepo)(nil)

// MemoRepo is the SQLite implementation of the MemoStore port interface.
type MemoRepo struct {
	db  *DB
	now func() time.Time
}

// NewMemoRepo creates a new MemoRepo backed by the given DB. A nil db yields a
// repo whose every call fails with model.ErrDatabaseUnavailable.
func NewMemoRepo(db *DB) *MemoRepo {
	return &MemoRepo{db: db, now: time.Now}
}

const memoColumns = `id, title, content, summary, created_at, updated_at`

// ListAll returns all memos ordered by updated_at descending.
func (r *MemoRepo) ListAll(ctx context.Context) ([]model.Memo, error) {
	if r.db == nil {
		return nil, model.NewStorageError("list memos", model.ErrDatabaseUnavailable)
	}

	const query = `SELECT ` + memoColumns + ` FROM memos ORDER BY updated_at DESC, id DESC`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, model.NewStorageError("list memos", err)
	}
	defer rows.Close()

	memos := []model.Memo{}
	for rows.Next() {
		memo, err := scanMemo(rows)
		if err != nil {
			return nil, model.NewStorageError("scan memo", err)
		}
		memos = append(memos, *memo)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError("iterate memos", err)
	}

	return memos, nil
}

// GetByID returns the memo with the given id, or (nil, nil) if it does not exist.
func (r *MemoRepo) GetByID(ctx context.Context, id int64) (*model.Memo, error) {
	if r.db == nil {
		return nil, model.NewStorageError("get memo", model.ErrDatabaseUnavailable)
	}

	const query = `SELECT ` + memoColumns + ` FROM memos WHERE id = ?`

	memo, err := scanMemo(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError(fmt.Sprintf("get memo %d", id), err)
	}

	return memo, nil
}

// Create inserts a memo and returns its id. created_at and updated_at are set
// to the same instant; summary starts NULL.
func (r *MemoRepo) Create(ctx context.Context, title, content string) (int64, error) {
	if r.db == nil {
		return 0, model.NewStorageError("create memo", model.ErrDatabaseUnavailable)
	}

	const query = `INSERT INTO memos (title, content, created_at, updated_at) VALUES (?, ?, ?, ?)`

	now := formatTime(r.now())
	result, err := r.db.Writer.ExecContext(ctx, query, title, content, now, now)
	if err != nil {
		return 0, model.NewStorageError("create memo", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, model.NewStorageError("read inserted memo id", err)
	}

	return id, nil
}

// Update applies the present fields of patch. updated_at never moves
// backwards. Returns false for an empty patch or a missing memo.
func (r *MemoRepo) Update(ctx context.Context, id int64, patch model.MemoPatch) (bool, error) {
	if r.db == nil {
		return false, model.NewStorageError("update memo", model.ErrDatabaseUnavailable)
	}

	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return false, nil
	}

	sets := make([]string, 0, len(assignments)+1)
	args := make([]any, 0, len(assignments)+2)
	for _, a := range assignments {
		sets = append(sets, a.Column+" = ?")
		args = append(args, a.Value)
	}
	sets = append(sets, "updated_at = MAX(updated_at, ?)")
	args = append(args, formatTime(r.now()), id)

	query := `UPDATE memos SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, args...)
	if err != nil {
		return false, model.NewStorageError(fmt.Sprintf("update memo %d", id), err)
	}

	return affected(result)
}

// Remove deletes the memo. Returns false if it did not exist.
func (r *MemoRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if r.db == nil {
		return false, model.NewStorageError("remove memo", model.ErrDatabaseUnavailable)
	}

	const query = `DELETE FROM memos WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return false, model.NewStorageError(fmt.Sprintf("remove memo %d", id), err)
	}

	return affected(result)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMemo(s scanner) (*model.Memo, error) {
	var memo model.Memo
	var summary sql.NullString
	var createdAt, updatedAt string

	if err := s.Scan(&memo.ID, &memo.Title, &memo.Content, &summary, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if summary.Valid {
		memo.Summary = &summary.String
	}

	var err error
	memo.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	memo.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &memo, nil
}

func affected(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, model.NewStorageError("check rows affected", err)
	}
	return rows > 0, nil
}

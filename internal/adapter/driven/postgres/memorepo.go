package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MemoStore = (*MemoRepo)(nil)

// MemoRepo is the PostgreSQL implementation of the MemoStore port interface.
type MemoRepo struct {
	db  *DB
	now func() time.Time
}

// NewMemoRepo creates a new MemoRepo backed by the given pool. A nil db yields
// a repo whose every call fails with model.ErrDatabaseUnavailable.
func NewMemoRepo(db *DB) *MemoRepo {
	return &MemoRepo{db: db, now: time.Now}
}

const memoColumns = `id, title, content, summary, created_at, updated_at`

func (r *MemoRepo) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// ListAll returns all memos ordered by updated_at descending.
func (r *MemoRepo) ListAll(ctx context.Context) ([]model.Memo, error) {
	if r.db == nil {
		return nil, model.NewStorageError("list memos", model.ErrDatabaseUnavailable)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+memoColumns+` FROM memos ORDER BY updated_at DESC, id DESC`)
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

	memo, err := scanMemo(r.db.Pool.QueryRow(ctx,
		`SELECT `+memoColumns+` FROM memos WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError(fmt.Sprintf("get memo %d", id), err)
	}

	return memo, nil
}

// Create inserts a memo and returns its id.
func (r *MemoRepo) Create(ctx context.Context, title, content string) (int64, error) {
	if r.db == nil {
		return 0, model.NewStorageError("create memo", model.ErrDatabaseUnavailable)
	}

	now := r.timestamp()
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO memos (title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 RETURNING id`,
		title, content, now,
	).Scan(&id)
	if err != nil {
		return 0, model.NewStorageError("create memo", err)
	}

	return id, nil
}

// Update applies the present fields of patch. The SET list is rendered from
// patch.Assignments() with positional placeholders, so the columns touched
// match the embedded backend exactly.
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
		args = append(args, a.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", a.Column, len(args)))
	}
	args = append(args, r.timestamp())
	sets = append(sets, fmt.Sprintf("updated_at = GREATEST(updated_at, $%d)", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE memos SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return false, model.NewStorageError(fmt.Sprintf("update memo %d", id), err)
	}

	return tag.RowsAffected() > 0, nil
}

// Remove deletes the memo. Returns false if it did not exist.
func (r *MemoRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if r.db == nil {
		return false, model.NewStorageError("remove memo", model.ErrDatabaseUnavailable)
	}

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM memos WHERE id = $1`, id)
	if err != nil {
		return false, model.NewStorageError(fmt.Sprintf("remove memo %d", id), err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanMemo(row pgx.Row) (*model.Memo, error) {
	var memo model.Memo
	if err := row.Scan(
		&memo.ID, &memo.Title, &memo.Content, &memo.Summary, &memo.CreatedAt, &memo.UpdatedAt,
	); err != nil {
		return nil, err
	}
	memo.CreatedAt = memo.CreatedAt.UTC()
	memo.UpdatedAt = memo.UpdatedAt.UTC()
	return &memo, nil
}

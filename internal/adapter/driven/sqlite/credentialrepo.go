package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the SQLite implementation of the CredentialStore port
// interface. It stores ciphertext only; callers encrypt before Save.
type CredentialRepo struct {
	db  *DB
	now func() time.Time
}

// NewCredentialRepo creates a new CredentialRepo backed by the given DB.
func NewCredentialRepo(db *DB) *CredentialRepo {
	return &CredentialRepo{db: db, now: time.Now}
}

// Save deletes every stored key and inserts ciphertext in one transaction,
// so concurrent readers see either the old row or the new one.
func (r *CredentialRepo) Save(ctx context.Context, ciphertext string) error {
	if r.db == nil {
		return model.NewStorageError("save credential", model.ErrDatabaseUnavailable)
	}

	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM api_keys`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO api_keys (key, created_at) VALUES (?, ?)`,
			ciphertext, formatTime(r.now()),
		)
		return err
	})
	return model.NewStorageError("save credential", err)
}

// Latest returns the most recently stored record, or (nil, nil) if none.
func (r *CredentialRepo) Latest(ctx context.Context) (*model.CredentialRecord, error) {
	if r.db == nil {
		return nil, model.NewStorageError("get credential", model.ErrDatabaseUnavailable)
	}

	const query = `SELECT id, key, created_at FROM api_keys ORDER BY created_at DESC, id DESC LIMIT 1`

	var rec model.CredentialRecord
	var createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(&rec.ID, &rec.Key, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError("get credential", err)
	}

	rec.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, model.NewStorageError("parse credential created_at", err)
	}

	return &rec, nil
}

// Get returns the most recently stored ciphertext, or ("", nil) if none.
func (r *CredentialRepo) Get(ctx context.Context) (string, error) {
	rec, err := r.Latest(ctx)
	if err != nil || rec == nil {
		return "", err
	}
	return rec.Key, nil
}

// Remove deletes the stored key. Returns false if nothing was stored.
func (r *CredentialRepo) Remove(ctx context.Context) (bool, error) {
	if r.db == nil {
		return false, model.NewStorageError("remove credential", model.ErrDatabaseUnavailable)
	}

	result, err := r.db.Writer.ExecContext(ctx, `DELETE FROM api_keys`)
	if err != nil {
		return false, model.NewStorageError("remove credential", err)
	}

	return affected(result)
}

// Has reports whether a key is stored.
func (r *CredentialRepo) Has(ctx context.Context) (bool, error) {
	key, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialRepo)(nil)

// CredentialRepo is the PostgreSQL implementation of the CredentialStore port
// interface.
type CredentialRepo struct {
	db  *DB
	now func() time.Time
}

// NewCredentialRepo creates a new CredentialRepo backed by the given pool.
func NewCredentialRepo(db *DB) *CredentialRepo {
	return &CredentialRepo{db: db, now: time.Now}
}

// Save deletes every stored key and inserts ciphertext in one transaction.
func (r *CredentialRepo) Save(ctx context.Context, ciphertext string) error {
	if r.db == nil {
		return model.NewStorageError("save credential", model.ErrDatabaseUnavailable)
	}

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM api_keys`); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO api_keys (key, created_at) VALUES ($1, $2)`,
			ciphertext, r.now().UTC().Truncate(time.Microsecond),
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

	var rec model.CredentialRecord
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, key, created_at FROM api_keys ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&rec.ID, &rec.Key, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError("get credential", err)
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
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

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM api_keys`)
	if err != nil {
		return false, model.NewStorageError("remove credential", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Has reports whether a key is stored.
func (r *CredentialRepo) Has(ctx context.Context) (bool, error) {
	key, err := r.Get(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

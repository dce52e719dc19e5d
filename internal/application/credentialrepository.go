package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// CredentialRepository encrypts the API key on write and decrypts it on read.
// The store it wraps only ever sees ciphertext.
type CredentialRepository struct {
	store      driven.CredentialStore
	cipher     driven.Cipher
	summarizer driven.Summarizer
	logger     *slog.Logger
}

// NewCredentialRepository creates a new CredentialRepository. summarizer is
// only used by Register and may be nil when Register is never called.
func NewCredentialRepository(
	store driven.CredentialStore,
	cipher driven.Cipher,
	summarizer driven.Summarizer,
	logger *slog.Logger,
) *CredentialRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialRepository{
		store:      store,
		cipher:     cipher,
		summarizer: summarizer,
		logger:     logger,
	}
}

// SaveAPIKey encrypts plain and replaces whatever key was stored before.
func (r *CredentialRepository) SaveAPIKey(ctx context.Context, plain string) error {
	ciphertext, err := r.cipher.Encrypt(plain)
	if err != nil {
		return fmt.Errorf("encrypt api key: %w", err)
	}
	if err := r.store.Save(ctx, ciphertext); err != nil {
		return fmt.Errorf("save api key: %w", err)
	}
	return nil
}

// GetAPIKey returns the decrypted key, or "" when none is stored. A storage
// or decryption failure is logged and reported as "no key".
func (r *CredentialRepository) GetAPIKey(ctx context.Context) (string, error) {
	ciphertext, err := r.store.Get(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to read stored api key", "error", err)
		return "", nil
	}
	if ciphertext == "" {
		return "", nil
	}

	plain, err := r.cipher.Decrypt(ciphertext)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to decrypt stored api key", "error", err)
		return "", nil
	}
	return plain, nil
}

// RemoveAPIKey deletes the stored key. Returns false if none was stored.
func (r *CredentialRepository) RemoveAPIKey(ctx context.Context) (bool, error) {
	return r.store.Remove(ctx)
}

// HasAPIKey reports whether a key is stored.
func (r *CredentialRepository) HasAPIKey(ctx context.Context) (bool, error) {
	return r.store.Has(ctx)
}

// Register validates plain against the provider and stores it if accepted.
// A rejected key yields model.ErrCredentialInvalid and nothing is stored.
func (r *CredentialRepository) Register(ctx context.Context, plain string) error {
	if r.summarizer == nil {
		return fmt.Errorf("register api key: no summarizer configured")
	}

	ok, err := r.summarizer.ValidateCredential(ctx, plain)
	if err != nil {
		return fmt.Errorf("validate api key: %w", err)
	}
	if !ok {
		return model.ErrCredentialInvalid
	}

	return r.SaveAPIKey(ctx, plain)
}

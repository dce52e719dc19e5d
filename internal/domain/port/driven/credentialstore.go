package driven

import (
	"context"
)

// CredentialStore defines the driven port for the single stored API key.
// Implementations hold ciphertext only; encryption happens above this port.
type CredentialStore interface {
	// Save replaces any stored credential with ciphertext. At most one
	// credential exists after Save returns.
	Save(ctx context.Context, ciphertext string) error

	// Get returns the most recently stored ciphertext, or ("", nil) if none.
	Get(ctx context.Context) (string, error)

	// Remove deletes the stored credential. Returns false without error when
	// nothing was stored.
	Remove(ctx context.Context) (bool, error)

	// Has reports whether a credential is stored.
	Has(ctx context.Context) (bool, error)
}

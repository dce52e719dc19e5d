package model

import "time"

// CredentialRecord is one row of the credential table. Key holds ciphertext
// produced by the credential cipher; the plaintext API key is never stored.
// At most one record exists at a time.
type CredentialRecord struct {
	ID        int64
	Key       string
	CreatedAt time.Time
}

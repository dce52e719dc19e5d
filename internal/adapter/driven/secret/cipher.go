// Package secret implements the credential cipher used to protect the stored
// API key.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// DefaultPassphrase is used when no passphrase is configured.
const DefaultPassphrase = "ai-memo-app-secret-key"

// keySalt is fixed so that a passphrase always derives the same key across
// restarts. Changing it invalidates every stored ciphertext.
var keySalt = []byte("aimemo/credential-cipher/v1")

// Compile-time interface satisfaction check.
var _ driven.Cipher = (*Cipher)(nil)

// Cipher encrypts credential values with AES-256-GCM under a key derived
// from a passphrase with Argon2id.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher derives the AES-256 key from passphrase. An empty passphrase
// falls back to DefaultPassphrase.
func NewCipher(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		passphrase = DefaultPassphrase
	}

	key := argon2.IDKey([]byte(passphrase), keySalt, 1, 64*1024, 4, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt returns base64(nonce || ciphertext || tag). A fresh random nonce is
// used for every call.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed or foreign ciphertext yields an
// error wrapping model.ErrDecryption.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64 decode: %v", model.ErrDecryption, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: %v", model.ErrDecryption, errors.New("ciphertext too short"))
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: gcm.Open: %v", model.ErrDecryption, err)
	}

	return string(plaintext), nil
}

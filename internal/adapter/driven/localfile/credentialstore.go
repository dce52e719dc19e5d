// Package localfile persists the encrypted API key in a small JSON document
// on local disk instead of the relational database.
package localfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

// StorageKey is the fixed key the ciphertext is stored under.
const StorageKey = "ai-memo-app-api-key"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the ciphertext under StorageKey in a JSON object.
// Writes replace the file atomically. Other keys in the document are
// preserved.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

// NewCredentialStore returns a store backed by the file at path. The file and
// its directory are created on first Save.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Save stores ciphertext under StorageKey, replacing any previous value.
func (s *CredentialStore) Save(_ context.Context, ciphertext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return model.NewStorageError("save credential", err)
	}
	doc[StorageKey] = ciphertext

	return model.NewStorageError("save credential", s.write(doc))
}

// Get returns the stored ciphertext, or ("", nil) if none.
func (s *CredentialStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", model.NewStorageError("get credential", err)
	}
	return doc[StorageKey], nil
}

// Remove deletes StorageKey. Returns false if it was not present.
func (s *CredentialStore) Remove(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, model.NewStorageError("remove credential", err)
	}
	if _, ok := doc[StorageKey]; !ok {
		return false, nil
	}
	delete(doc, StorageKey)

	if err := s.write(doc); err != nil {
		return false, model.NewStorageError("remove credential", err)
	}
	return true, nil
}

// Has reports whether a non-empty value is stored under StorageKey.
func (s *CredentialStore) Has(ctx context.Context) (bool, error) {
	key, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return key != "", nil
}

func (s *CredentialStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	doc := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *CredentialStore) write(doc map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return os.Chmod(s.path, 0o600)
}

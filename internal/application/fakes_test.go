package application

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

// --- In-memory fakes of the driven ports ---

type fakeMemoStore struct {
	memos     map[int64]*model.Memo
	nextID    int64
	err       error
	updates   []model.MemoPatch
	updateErr error
}

func newFakeMemoStore() *fakeMemoStore {
	return &fakeMemoStore{memos: map[int64]*model.Memo{}}
}

func (f *fakeMemoStore) ListAll(_ context.Context) ([]model.Memo, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Memo, 0, len(f.memos))
	for _, m := range f.memos {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeMemoStore) GetByID(_ context.Context, id int64) (*model.Memo, error) {
	if f.err != nil {
		return nil, f.err
	}
	m, ok := f.memos[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMemoStore) Create(_ context.Context, title, content string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	now := time.Now().UTC()
	f.memos[f.nextID] = &model.Memo{ID: f.nextID, Title: title, Content: content, CreatedAt: now, UpdatedAt: now}
	return f.nextID, nil
}

func (f *fakeMemoStore) Update(_ context.Context, id int64, patch model.MemoPatch) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	f.updates = append(f.updates, patch)
	m, ok := f.memos[id]
	if !ok || patch.IsEmpty() {
		return false, nil
	}
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Content != nil {
		m.Content = *patch.Content
	}
	if patch.Summary != nil {
		s := *patch.Summary
		m.Summary = &s
	}
	m.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (f *fakeMemoStore) Remove(_ context.Context, id int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if _, ok := f.memos[id]; !ok {
		return false, nil
	}
	delete(f.memos, id)
	return true, nil
}

type fakeCredentialStore struct {
	value  string
	getErr error
	err    error
	saves  int
}

func (f *fakeCredentialStore) Save(_ context.Context, ciphertext string) error {
	if f.err != nil {
		return f.err
	}
	f.saves++
	f.value = ciphertext
	return nil
}

func (f *fakeCredentialStore) Get(_ context.Context) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.value, nil
}

func (f *fakeCredentialStore) Remove(_ context.Context) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	had := f.value != ""
	f.value = ""
	return had, nil
}

func (f *fakeCredentialStore) Has(_ context.Context) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.value != "", nil
}

// prefixCipher is a reversible stand-in for the AES cipher.
type prefixCipher struct{}

const cipherPrefix = "enc:"

func (prefixCipher) Encrypt(plain string) (string, error) {
	return cipherPrefix + plain, nil
}

func (prefixCipher) Decrypt(ciphertext string) (string, error) {
	if !strings.HasPrefix(ciphertext, cipherPrefix) {
		return "", model.ErrDecryption
	}
	return strings.TrimPrefix(ciphertext, cipherPrefix), nil
}

type fakeSummarizer struct {
	validKey    string
	validateErr error
	summary     string
	summaryErr  error
	gotKey      string
	gotText     string
}

func (f *fakeSummarizer) ValidateCredential(_ context.Context, apiKey string) (bool, error) {
	if f.validateErr != nil {
		return false, f.validateErr
	}
	return apiKey == f.validKey, nil
}

func (f *fakeSummarizer) GenerateSummary(_ context.Context, apiKey, text string) (string, error) {
	f.gotKey = apiKey
	f.gotText = text
	if f.summaryErr != nil {
		return "", f.summaryErr
	}
	return f.summary, nil
}

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

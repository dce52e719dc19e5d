package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

func newTestCredentialRepository(store *fakeCredentialStore, summarizer *fakeSummarizer) *CredentialRepository {
	return NewCredentialRepository(store, prefixCipher{}, summarizer, discardLogger())
}

func TestCredentialRepository_SaveStoresCiphertext(t *testing.T) {
	store := &fakeCredentialStore{}
	repo := newTestCredentialRepository(store, nil)
	ctx := context.Background()

	require.NoError(t, repo.SaveAPIKey(ctx, "sk-1"))
	assert.Equal(t, "enc:sk-1", store.value)

	got, err := repo.GetAPIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sk-1", got)
}

func TestCredentialRepository_GetAbsent(t *testing.T) {
	repo := newTestCredentialRepository(&fakeCredentialStore{}, nil)

	got, err := repo.GetAPIKey(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialRepository_GetSwallowsStorageError(t *testing.T) {
	store := &fakeCredentialStore{getErr: model.NewStorageError("get credential", errBoom)}
	repo := newTestCredentialRepository(store, nil)

	got, err := repo.GetAPIKey(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialRepository_GetSwallowsDecryptionError(t *testing.T) {
	store := &fakeCredentialStore{value: "written-under-another-passphrase"}
	repo := newTestCredentialRepository(store, nil)

	got, err := repo.GetAPIKey(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCredentialRepository_SavePropagatesStorageError(t *testing.T) {
	store := &fakeCredentialStore{err: errBoom}
	repo := newTestCredentialRepository(store, nil)

	assert.ErrorIs(t, repo.SaveAPIKey(context.Background(), "sk"), errBoom)
}

func TestCredentialRepository_RemoveAndHas(t *testing.T) {
	store := &fakeCredentialStore{}
	repo := newTestCredentialRepository(store, nil)
	ctx := context.Background()

	removed, err := repo.RemoveAPIKey(ctx)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, repo.SaveAPIKey(ctx, "sk"))
	has, err := repo.HasAPIKey(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	removed, err = repo.RemoveAPIKey(ctx)
	require.NoError(t, err)
	assert.True(t, removed)

	has, err = repo.HasAPIKey(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestCredentialRepository_RegisterAccepted(t *testing.T) {
	store := &fakeCredentialStore{}
	repo := newTestCredentialRepository(store, &fakeSummarizer{validKey: "sk-good"})

	require.NoError(t, repo.Register(context.Background(), "sk-good"))
	assert.Equal(t, "enc:sk-good", store.value)
}

func TestCredentialRepository_RegisterRejected(t *testing.T) {
	store := &fakeCredentialStore{}
	repo := newTestCredentialRepository(store, &fakeSummarizer{validKey: "sk-good"})

	err := repo.Register(context.Background(), "sk-bad")

	require.ErrorIs(t, err, model.ErrCredentialInvalid)
	assert.Zero(t, store.saves)
}

func TestCredentialRepository_RegisterProviderUnreachable(t *testing.T) {
	store := &fakeCredentialStore{}
	repo := newTestCredentialRepository(store, &fakeSummarizer{validateErr: model.ErrProviderUnreachable})

	err := repo.Register(context.Background(), "sk")

	require.ErrorIs(t, err, model.ErrProviderUnreachable)
	assert.Zero(t, store.saves)
}

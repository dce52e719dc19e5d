package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

type summaryFixture struct {
	memos      *fakeMemoStore
	creds      *fakeCredentialStore
	summarizer *fakeSummarizer
	svc        *SummaryService
}

func newSummaryFixture() *summaryFixture {
	f := &summaryFixture{
		memos:      newFakeMemoStore(),
		creds:      &fakeCredentialStore{},
		summarizer: &fakeSummarizer{summary: "short"},
	}
	repo := NewCredentialRepository(f.creds, prefixCipher{}, f.summarizer, discardLogger())
	f.svc = NewSummaryService(f.memos, repo, f.summarizer)
	return f
}

func TestSummaryService_Summarize(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	id, err := f.memos.Create(ctx, "Trip", "long description of the trip")
	require.NoError(t, err)
	f.creds.value = "enc:sk-live"

	got, err := f.svc.Summarize(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "short", got)
	assert.Equal(t, "sk-live", f.summarizer.gotKey)
	assert.Equal(t, "long description of the trip", f.summarizer.gotText)

	memo, err := f.memos.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, memo.Summary)
	assert.Equal(t, "short", *memo.Summary)
	assert.Equal(t, "Trip", memo.Title)
	require.Len(t, f.memos.updates, 1)
	assert.Equal(t, model.SummaryPatch("short"), f.memos.updates[0])
}

func TestSummaryService_MissingMemo(t *testing.T) {
	f := newSummaryFixture()
	f.creds.value = "enc:sk-live"

	_, err := f.svc.Summarize(context.Background(), 99)

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSummaryService_MissingKey(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	id, err := f.memos.Create(ctx, "t", "c")
	require.NoError(t, err)

	_, err = f.svc.Summarize(ctx, id)

	assert.ErrorIs(t, err, model.ErrCredentialMissing)
	assert.Empty(t, f.summarizer.gotKey)
}

func TestSummaryService_UndecryptableKeyCountsAsMissing(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	id, err := f.memos.Create(ctx, "t", "c")
	require.NoError(t, err)
	f.creds.value = "garbage"

	_, err = f.svc.Summarize(ctx, id)

	assert.ErrorIs(t, err, model.ErrCredentialMissing)
}

func TestSummaryService_ProviderFailure(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	id, err := f.memos.Create(ctx, "t", "c")
	require.NoError(t, err)
	f.creds.value = "enc:sk-live"
	f.summarizer.summaryErr = model.ErrSummarization

	_, err = f.svc.Summarize(ctx, id)

	require.ErrorIs(t, err, model.ErrSummarization)
	assert.Empty(t, f.memos.updates)
}

func TestSummaryService_SaveFailure(t *testing.T) {
	f := newSummaryFixture()
	ctx := context.Background()
	id, err := f.memos.Create(ctx, "t", "c")
	require.NoError(t, err)
	f.creds.value = "enc:sk-live"
	f.memos.updateErr = model.NewStorageError("update memo", errBoom)

	_, err = f.svc.Summarize(ctx, id)

	var se *model.StorageError
	assert.ErrorAs(t, err, &se)
}

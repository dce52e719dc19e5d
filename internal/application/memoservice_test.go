package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/aimemo/internal/domain/model"
)

func strPtr(s string) *string { return &s }

func TestMemoService_CreateAndGet(t *testing.T) {
	svc := NewMemoService(newFakeMemoStore())
	ctx := context.Background()

	id, err := svc.Create(ctx, "Groceries", "milk, eggs")
	require.NoError(t, err)

	memo, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", memo.Title)
	assert.Equal(t, "milk, eggs", memo.Content)
	assert.Nil(t, memo.Summary)
}

func TestMemoService_GetMissing(t *testing.T) {
	svc := NewMemoService(newFakeMemoStore())

	_, err := svc.Get(context.Background(), 42)

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoService_UpdateEmptyPatchIsValidationError(t *testing.T) {
	store := newFakeMemoStore()
	svc := NewMemoService(store)

	err := svc.Update(context.Background(), 1, model.MemoPatch{})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, store.updates, "store must not be called")
}

func TestMemoService_UpdateMissing(t *testing.T) {
	svc := NewMemoService(newFakeMemoStore())

	err := svc.Update(context.Background(), 7, model.MemoPatch{Title: strPtr("x")})

	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMemoService_UpdatePartial(t *testing.T) {
	svc := NewMemoService(newFakeMemoStore())
	ctx := context.Background()
	id, err := svc.Create(ctx, "t", "c")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, id, model.MemoPatch{Content: strPtr("c2")}))

	memo, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "t", memo.Title)
	assert.Equal(t, "c2", memo.Content)
}

func TestMemoService_Delete(t *testing.T) {
	svc := NewMemoService(newFakeMemoStore())
	ctx := context.Background()
	id, err := svc.Create(ctx, "t", "c")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	assert.ErrorIs(t, svc.Delete(ctx, id), model.ErrNotFound)
}

func TestMemoService_StorageErrorPropagates(t *testing.T) {
	store := newFakeMemoStore()
	store.err = model.NewStorageError("list memos", model.ErrDatabaseUnavailable)
	svc := NewMemoService(store)

	_, err := svc.List(context.Background())

	var se *model.StorageError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, model.ErrDatabaseUnavailable)
}

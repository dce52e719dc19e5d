package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMemoPatch_AssignmentsOrder(t *testing.T) {
	p := MemoPatch{Summary: strPtr("s"), Title: strPtr("t"), Content: strPtr("c")}

	got := p.Assignments()

	require.Len(t, got, 3)
	assert.Equal(t, []FieldAssignment{
		{Column: "title", Value: "t"},
		{Column: "content", Value: "c"},
		{Column: "summary", Value: "s"},
	}, got)
}

func TestMemoPatch_Partial(t *testing.T) {
	p := MemoPatch{Content: strPtr("body")}

	assert.False(t, p.IsEmpty())
	assert.Equal(t, []FieldAssignment{{Column: "content", Value: "body"}}, p.Assignments())
}

func TestMemoPatch_Empty(t *testing.T) {
	var p MemoPatch

	assert.True(t, p.IsEmpty())
	assert.Empty(t, p.Assignments())
}

func TestMemoPatch_EmptyStringIsPresent(t *testing.T) {
	p := SummaryPatch("")

	assert.False(t, p.IsEmpty())
	assert.Equal(t, []FieldAssignment{{Column: "summary", Value: ""}}, p.Assignments())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "title", Message: "is required"},
		{Field: "content", Message: "is required"},
	}}

	assert.Equal(t, "validation failed: title: is required; content: is required", err.Error())
}

func TestStorageError_Unwrap(t *testing.T) {
	err := NewStorageError("list memos", ErrDatabaseUnavailable)

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list memos", se.Op)
	assert.ErrorIs(t, err, ErrDatabaseUnavailable)
	assert.Nil(t, NewStorageError("noop", nil))
}

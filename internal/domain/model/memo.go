// Package model holds the domain types and error taxonomy shared by every
// layer: memos, memo patches and the stored credential record.
package model

import "time"

// Memo is a user note with an optional AI-generated summary.
type Memo struct {
	ID        int64
	Title     string
	Content   string
	Summary   *string // nil until a summary is generated or set.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Memo field limits shared by validation and storage.
const (
	MaxTitleLength = 100
)

// MemoPatch carries the fields of a partial memo update. A nil field is left
// unchanged.
type MemoPatch struct {
	Title   *string
	Content *string
	Summary *string
}

// FieldAssignment is a single "column = value" pair of an update statement.
type FieldAssignment struct {
	Column string
	Value  string
}

// Assignments returns the present fields of the patch in the fixed order
// title, content, summary. Storage adapters render these into their own
// placeholder syntax so every backend updates exactly the same columns.
func (p MemoPatch) Assignments() []FieldAssignment {
	var out []FieldAssignment
	if p.Title != nil {
		out = append(out, FieldAssignment{Column: "title", Value: *p.Title})
	}
	if p.Content != nil {
		out = append(out, FieldAssignment{Column: "content", Value: *p.Content})
	}
	if p.Summary != nil {
		out = append(out, FieldAssignment{Column: "summary", Value: *p.Summary})
	}
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p MemoPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Summary == nil
}

// SummaryPatch returns a patch that only sets the summary.
func SummaryPatch(summary string) MemoPatch {
	return MemoPatch{Summary: &summary}
}

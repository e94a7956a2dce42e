package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Record represents one piece of creative work shown in the catalog.
//
// The catalog store is the only owner of records. Everything handed out
// by the store is a copy (see Clone).
type Record struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is unique within the catalog. Assigned client-side.
	// Example: subtitle-studio, 01929c3e-...
	ID string `json:"id"`

	// Title must be non-empty for the record to be persisted.
	Title string `json:"title"`

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	Thumbnail      string   `json:"thumbnail"`
	Duration       string   `json:"duration"`
	ViewCount      string   `json:"views"`
	PublishedLabel string   `json:"uploadDate"`
	Category       Category `json:"category"`

	// Tags and Skills keep insertion order.
	Tags   []string `json:"tags"`
	Skills []string `json:"skills"`

	Description string `json:"description"`

	// ─────────────────────────────
	// Optional
	// ─────────────────────────────

	// AIDescription is set only when a generated description was saved
	// explicitly by the caller.
	AIDescription Optional[string] `json:"aiDescription,omitzero"`
	VideoURL      Optional[string] `json:"videoUrl,omitzero"`
}

// NewRecordID returns a fresh, time-ordered record identifier.
func NewRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Validate checks the rules a record must satisfy before being persisted.
func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: invalid category", ErrValidation)
	}
	return nil
}

// Clone returns a deep copy so callers never share slices with the store.
func (r Record) Clone() Record {
	r.Tags = slices.Clone(r.Tags)
	r.Skills = slices.Clone(r.Skills)
	return r
}

// CloneRecords deep-copies a slice of records, preserving order.
func CloneRecords(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}

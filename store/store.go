// Package store keeps completed translation results between the translate
// and download steps.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/doctrans"
)

// ErrNotFound is returned when a record does not exist or has expired.
var ErrNotFound = errors.New("record not found")

// Record is a persisted translation result.
type Record struct {
	ID         string             `json:"id"`
	FileName   string             `json:"file_name"` // Name of the uploaded file
	SourceLang doctrans.Language  `json:"source_lang"`
	Document   *doctrans.Document `json:"document"`
	Failures   []doctrans.Failure `json:"failures,omitempty"`
	Stats      doctrans.Stats     `json:"stats"`
	CreatedAt  time.Time          `json:"created_at"`
}

// NewRecord builds a record from a completed run.
func NewRecord(id, fileName string, lang doctrans.Language, res *doctrans.Result, now time.Time) *Record {
	return &Record{
		ID:         id,
		FileName:   fileName,
		SourceLang: lang,
		Document:   res.Document,
		Failures:   res.Failures,
		Stats:      res.Stats,
		CreatedAt:  now.UTC(),
	}
}

// Store is the interface for record storage.
type Store interface {
	// Put stores a record under rec.ID, replacing any previous one.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record. Returns ErrNotFound if missing or expired.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases any underlying connection.
	Close() error
}

// Package snapshot persists the in-progress questionnaire record so a
// respondent can resume after an interruption. A store holds at most one
// snapshot per key; writes are last-write-wins because the engine is the
// only writer.
package snapshot

import (
	"context"
	"errors"

	"github.com/medmatch/intake/internal/record"
)

// ErrNoSnapshot is returned by Load when nothing has been saved under the key.
var ErrNoSnapshot = errors.New("no snapshot")

// Store mirrors one questionnaire record to durable storage.
type Store interface {
	// Load returns the stored record, ErrNoSnapshot when absent, or a decode
	// error when the stored bytes are not a well-formed record. Callers fall
	// back to the default record on any error.
	Load(ctx context.Context) (*record.Record, error)

	// Save overwrites the snapshot. Called on every record mutation.
	Save(ctx context.Context, r *record.Record) error

	// Clear removes the snapshot.
	Clear(ctx context.Context) error
}

// Package repository persists session records.
package repository

import (
	"context"
	"time"

	"github.com/okian/lineup/internal/domain/state"
	"github.com/okian/lineup/pkg/metrics"
)

// Record is one stored session.
type Record struct {
	ID        string      `json:"id"`
	State     state.State `json:"state"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Store provides read/write access to session records. Implementations
// return copies; callers never share state with the store.
type Store interface {
	// Save inserts or replaces the record with r.ID.
	Save(ctx context.Context, r Record) error

	// Load returns the record with id, or ErrNotFound.
	Load(ctx context.Context, id string) (Record, error)

	// Delete removes the record with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored records.
	Count(ctx context.Context) int
}

func observe(op string, start time.Time) {
	metrics.RecordStoreLatency(op, float64(time.Since(start).Microseconds())/1000)
}

func clone(r Record) Record {
	r.State = r.State.Clone()
	return r
}

// Package store archives generation runs.
//
// The HTTP server stores one [Record] per run so diagrams can be fetched
// and re-rendered later without regenerating them. Two backends implement
// the [Store] interface:
//   - memory: in-process storage for development and tests
//   - mongo: MongoDB-backed storage for deployments
//
// # Usage
//
// Create a store and archive a run:
//
//	st := store.NewMemoryStore()
//	defer st.Close(ctx)
//
//	rec := store.NewRecord(opts.SourceRoots, result)
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//
// Retrieve it later:
//
//	rec, err := st.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if rec == nil {
//	    // Record not found
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/archmap/archmap/pkg/generator"
)

// Record is one archived generation run.
type Record struct {
	ID          string            `json:"id" bson:"_id"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	SourceRoots []string          `json:"source_roots,omitempty" bson:"source_roots,omitempty"`
	Diagrams    map[string]string `json:"diagrams" bson:"diagrams"`
	Stats       generator.Stats   `json:"stats" bson:"stats"`
}

// Store is the interface for run archive backends.
type Store interface {
	// Get retrieves a record by ID.
	// Returns nil, nil if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewRecord creates a record for one run result with a fresh ID.
func NewRecord(roots []string, result *generator.Result) *Record {
	return &Record{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		SourceRoots: roots,
		Diagrams:    result.Diagrams,
		Stats:       result.Stats,
	}
}

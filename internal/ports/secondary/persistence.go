// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the sync layer drives
// the local store, the remote store, and the connectivity probe.
package secondary

import (
	"context"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
)

// RecordStore defines the secondary port for durable local persistence of
// record collections. Implementations must not depend on the network; all
// operations are fast local I/O.
type RecordStore interface {
	// Load returns all records for the collection, newest-first by creation
	// time. An empty collection returns an empty slice. Corrupt rows are
	// skipped, not surfaced; only a storage-level failure returns an error.
	Load(ctx context.Context, collection string) ([]*record.Record, error)

	// SaveAll overwrites the full collection with the given sequence.
	// Idempotent; last writer wins.
	SaveAll(ctx context.Context, collection string, records []*record.Record) error

	// Upsert replaces the record with a matching id, or inserts it.
	Upsert(ctx context.Context, collection string, rec *record.Record) error

	// Remove deletes the record with a matching id. No-op if absent.
	Remove(ctx context.Context, collection string, id string) error
}

// Package primary defines the primary ports (driving interfaces) for the
// application: the record coordinator contract every feature module uses for
// persistence, and the per-feature services the CLI drives.
package primary

import (
	"context"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
)

// RecordService is the single persistence authority for feature modules.
// Writes always land locally first; remote synchronization is best-effort
// and never fails the triggering call.
type RecordService interface {
	// Load returns the collection, preferring the remote store when it is
	// reachable (and mirroring the result locally), falling back to the
	// local store otherwise. A pristine store returns the registered demo
	// seed, tagged record.SourceDemo.
	Load(ctx context.Context, collection string) ([]*record.Record, error)

	// Create stamps the envelope, writes locally, and attempts an immediate
	// remote write. Returns the stored record with whatever sync state was
	// achieved.
	Create(ctx context.Context, collection string, payload map[string]any) (*record.Record, error)

	// Update shallow-merges patch into the payload, bumps UpdatedAt, clears
	// SyncedAt, writes locally, and attempts a remote upsert. Returns an
	// error wrapping record.ErrNotFound for an unknown id.
	Update(ctx context.Context, collection, id string, patch map[string]any) (*record.Record, error)

	// Delete removes the record locally first, then best-effort remotely.
	// Returns an error wrapping record.ErrNotFound for an unknown id.
	Delete(ctx context.Context, collection, id string) error

	// Reconcile pushes every local-only or stale record to the remote store,
	// stamping SyncedAt per success. Idempotent; safe to invoke while other
	// calls are in flight.
	Reconcile(ctx context.Context, collection string) (ReconcileResult, error)

	// RegisterCollection declares a collection and its first-run demo seed.
	// Registered collections are reconciled on every offline-to-online
	// transition.
	RegisterCollection(collection string, seed []map[string]any)

	// Collections returns the registered collection names.
	Collections() []string
}

// ReconcileResult summarizes one reconcile pass over a collection.
type ReconcileResult struct {
	Collection string
	Pushed     int
	Skipped    int // mutated mid-push; left stale for the next pass
	Failed     int
}

// SyncStatus summarizes the sync state of one collection for display.
type SyncStatus struct {
	Collection string
	Total      int
	Synced     int
	LocalOnly  int
	Stale      int
}

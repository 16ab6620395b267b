package secondary

import (
	"context"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
)

// RemoteGateway defines the secondary port for the per-user remote document
// store. The remote side may be entirely unavailable (no client configured,
// no session, or offline); callers must check Available before every call and
// never assume availability persists between calls.
type RemoteGateway interface {
	// Available reports whether the remote client is initialized, a user
	// identity is established, and the device last observed itself online.
	Available(ctx context.Context) bool

	// FetchRecent returns up to limit records for the collection, scoped to
	// userID, newest-first by creation time. Returns an error wrapping
	// record.ErrRemoteUnavailable when called while unavailable, or
	// record.ErrRemoteRequestFailed on a network, auth, or server error.
	FetchRecent(ctx context.Context, collection, userID string, limit int) ([]*record.Record, error)

	// Upsert writes or merges one record by id. Never fails for "not found";
	// errors wrap record.ErrRemoteRequestFailed or ErrRemoteUnavailable.
	Upsert(ctx context.Context, collection string, rec *record.Record) error

	// Delete removes one record by id. Best-effort: the caller logs and
	// swallows the error, the local deletion stays authoritative for this
	// device.
	Delete(ctx context.Context, collection string, id string) error
}

// ConnectivityProbe checks whether the remote store is reachable right now.
// The connectivity monitor runs it periodically and on demand.
type ConnectivityProbe interface {
	Ping(ctx context.Context) error
}

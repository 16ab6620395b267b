package record

import "errors"

// Sentinel errors for the persistence and sync layers. Callers classify
// failures with errors.Is; everything else wraps one of these.
var (
	// ErrNotFound means an update or delete referenced an id absent from the
	// collection. Expected in normal operation; callers probe for existence.
	ErrNotFound = errors.New("record not found")

	// ErrPersistenceFailed means a local write failed (for example the
	// storage volume is full). Fatal to the triggering operation and always
	// surfaced to the caller.
	ErrPersistenceFailed = errors.New("local persistence failed")

	// ErrRemoteUnavailable means no remote client or session exists. Always
	// recoverable; callers fall back to local-only behavior.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrRemoteRequestFailed means a remote call was attempted and failed
	// (network, auth, server error, or timeout). Always recoverable; retried
	// on the next reconcile trigger.
	ErrRemoteRequestFailed = errors.New("remote request failed")
)

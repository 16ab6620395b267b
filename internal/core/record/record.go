// Package record defines the envelope every stored farm record carries:
// identity, ownership, provenance, and the timestamps the sync layer compares
// to decide whether a record still needs to be pushed to the remote store.
package record

import (
	"time"
)

// AnonymousUser is the owner assigned when no authenticated session exists.
const AnonymousUser = "anonymous"

// TimeFormat is the timestamp layout used for all envelope fields. Fixed
// width, millisecond precision, always UTC, so timestamps compare
// lexicographically.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Source identifies which store last authoritatively produced a record's
// contents. Set only by the sync coordinator, never by calling code.
type Source string

const (
	// SourceLocal marks a record last written by this device.
	SourceLocal Source = "local"
	// SourceRemote marks a record last fetched from the remote store.
	SourceRemote Source = "remote"
	// SourceDemo marks a first-run seed record.
	SourceDemo Source = "demo"
)

// SyncState is the derived synchronization state of a record. It is never
// stored; it is computed from the UpdatedAt/SyncedAt comparison.
type SyncState string

const (
	// StateLocalOnly means the record has never been confirmed remotely.
	StateLocalOnly SyncState = "local-only"
	// StateSynced means the last confirmed remote write covers the latest
	// local mutation.
	StateSynced SyncState = "synced"
	// StateStale means the record was mutated after its last confirmed
	// remote write.
	StateStale SyncState = "stale"
)

// Record is one business entity plus the coordinator-owned envelope. The
// payload is opaque to the sync layer; each feature module owns its shape.
type Record struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Source    Source         `json:"source"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	SyncedAt  string         `json:"syncedAt,omitempty"`
	Payload   map[string]any `json:"payload"`
}

// Now returns the current time formatted for envelope fields.
func Now() string {
	return FormatTime(time.Now())
}

// FormatTime formats t for envelope fields.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// State derives the sync state from the envelope timestamps.
func (r *Record) State() SyncState {
	if r.SyncedAt == "" {
		return StateLocalOnly
	}
	if timeLess(r.SyncedAt, r.UpdatedAt) {
		return StateStale
	}
	return StateSynced
}

// NeedsSync reports whether the record is eligible for the next sync pass.
func (r *Record) NeedsSync() bool {
	return r.State() != StateSynced
}

// Clone returns a deep copy. The coordinator hands out clones so callers
// cannot mutate stored state behind its back.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Payload = clonePayload(r.Payload)
	return &cp
}

// Normalize fills in envelope fields missing from records that predate the
// envelope. Returns true if anything changed.
func (r *Record) Normalize(userID string) bool {
	changed := false
	if r.UserID == "" {
		r.UserID = userID
		changed = true
	}
	if r.Source == "" {
		r.Source = SourceLocal
		changed = true
	}
	if r.CreatedAt == "" {
		r.CreatedAt = Now()
		changed = true
	}
	if r.UpdatedAt == "" {
		r.UpdatedAt = r.CreatedAt
		changed = true
	}
	if r.Payload == nil {
		r.Payload = map[string]any{}
		changed = true
	}
	return changed
}

// CreatedAtTime parses the creation timestamp. Zero time on failure.
func (r *Record) CreatedAtTime() time.Time {
	t, _ := parseTime(r.CreatedAt)
	return t
}

// CopyPayload deep-copies a caller-supplied payload so stored state never
// aliases caller memory.
func CopyPayload(p map[string]any) map[string]any {
	return clonePayload(p)
}

func clonePayload(p map[string]any) map[string]any {
	if p == nil {
		return nil
	}
	cp := make(map[string]any, len(p))
	for k, v := range p {
		cp[k] = cloneValue(v)
	}
	return cp
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return clonePayload(t)
	case []any:
		cp := make([]any, len(t))
		for i, e := range t {
			cp[i] = cloneValue(e)
		}
		return cp
	default:
		return v
	}
}

// timeLess compares two envelope timestamps. Both sides are parsed so that
// records written by other implementations with differing precision still
// compare correctly; unparsable values fall back to string comparison.
func timeLess(a, b string) bool {
	ta, errA := parseTime(a)
	tb, errB := parseTime(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(TimeFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

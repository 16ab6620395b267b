package record

import (
	"strings"
	"testing"
	"time"
)

func TestState(t *testing.T) {
	tests := []struct {
		name     string
		updated  string
		synced   string
		expected SyncState
	}{
		{"never synced", "2026-08-01T10:00:00.000Z", "", StateLocalOnly},
		{"synced after update", "2026-08-01T10:00:00.000Z", "2026-08-01T10:00:01.000Z", StateSynced},
		{"synced exactly at update", "2026-08-01T10:00:00.000Z", "2026-08-01T10:00:00.000Z", StateSynced},
		{"updated after sync", "2026-08-01T10:00:02.000Z", "2026-08-01T10:00:01.000Z", StateStale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{UpdatedAt: tt.updated, SyncedAt: tt.synced}
			if got := r.State(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			needs := tt.expected != StateSynced
			if r.NeedsSync() != needs {
				t.Errorf("expected NeedsSync %v", needs)
			}
		})
	}
}

func TestState_MixedTimestampPrecision(t *testing.T) {
	// Records written by other clients can carry sub-millisecond precision.
	r := &Record{
		UpdatedAt: "2026-08-01T10:00:00.000Z",
		SyncedAt:  "2026-08-01T10:00:00.500001Z",
	}
	if got := r.State(); got != StateSynced {
		t.Errorf("expected synced, got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := FormatTime(time.Date(2026, 8, 1, 13, 30, 5, 250_000_000, loc))
	if ts != "2026-08-01T12:30:05.250Z" {
		t.Errorf("expected UTC millisecond format, got %q", ts)
	}
}

func TestClone_DeepCopiesPayload(t *testing.T) {
	orig := &Record{
		ID:      "1",
		Payload: map[string]any{"nested": map[string]any{"n": 1.0}, "list": []any{"a"}},
	}
	cp := orig.Clone()

	cp.Payload["nested"].(map[string]any)["n"] = 2.0
	cp.Payload["list"].([]any)[0] = "b"

	if orig.Payload["nested"].(map[string]any)["n"] != 1.0 {
		t.Error("nested map aliased between clone and original")
	}
	if orig.Payload["list"].([]any)[0] != "a" {
		t.Error("slice aliased between clone and original")
	}
}

func TestClone_Nil(t *testing.T) {
	var r *Record
	if r.Clone() != nil {
		t.Error("expected nil clone of nil record")
	}
}

func TestNormalize(t *testing.T) {
	r := &Record{ID: "legacy"}
	if !r.Normalize("farmer-1") {
		t.Fatal("expected changes reported")
	}
	if r.UserID != "farmer-1" {
		t.Errorf("expected filled userId, got %q", r.UserID)
	}
	if r.Source != SourceLocal {
		t.Errorf("expected source local, got %q", r.Source)
	}
	if r.CreatedAt == "" || r.UpdatedAt != r.CreatedAt {
		t.Errorf("expected createdAt copied to updatedAt, got %q / %q", r.CreatedAt, r.UpdatedAt)
	}
	if r.Payload == nil {
		t.Error("expected empty payload map")
	}

	if r.Normalize("farmer-1") {
		t.Error("expected no-op on already complete record")
	}
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1756400000123)
	id := NewID(now)
	if id != "1756400000123" {
		t.Errorf("expected millisecond id, got %q", id)
	}
}

func TestRederiveID(t *testing.T) {
	now := time.UnixMilli(1756400000123)
	a := RederiveID(now)
	b := RederiveID(now)

	for _, id := range []string{a, b} {
		prefix, suffix, ok := strings.Cut(id, "-")
		if !ok {
			t.Fatalf("expected millis-suffix form, got %q", id)
		}
		if prefix != "1756400000123" {
			t.Errorf("expected millisecond prefix, got %q", prefix)
		}
		if len(suffix) != 8 {
			t.Errorf("expected 8-char suffix, got %q", suffix)
		}
	}
	if a == b {
		t.Error("expected distinct ids for the same instant")
	}
}

func TestCreatedAtTime(t *testing.T) {
	r := &Record{CreatedAt: "2026-08-01T10:00:00.250Z"}
	got := r.CreatedAtTime()
	if got.UnixMilli() != time.Date(2026, 8, 1, 10, 0, 0, 250_000_000, time.UTC).UnixMilli() {
		t.Errorf("unexpected parse result: %v", got)
	}

	bad := &Record{CreatedAt: "not-a-time"}
	if !bad.CreatedAtTime().IsZero() {
		t.Error("expected zero time for unparsable timestamp")
	}
}

func TestTimestampsCompareLexicographically(t *testing.T) {
	// The fixed-width format makes string order match time order, which the
	// storage layer relies on for index scores.
	earlier := FormatTime(time.UnixMilli(1756400000000))
	later := FormatTime(time.UnixMilli(1756400000001))
	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

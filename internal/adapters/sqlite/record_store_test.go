package sqlite

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/db"
)

func newTestStore(t *testing.T) (*RecordStore, *sql.DB) {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.InitSchema(database); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return NewRecordStore(database, zerolog.Nop()), database
}

func testRecord(id, createdAt string) *record.Record {
	return &record.Record{
		ID:        id,
		UserID:    "farmer-1",
		Source:    record.SourceLocal,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Payload:   map[string]any{"value": id},
	}
}

func TestUpsertAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("1", "2026-08-01T10:00:00.000Z")
	rec.SyncedAt = "2026-08-01T10:00:01.000Z"
	if err := store.Upsert(ctx, "transactions", rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	recs, err := store.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	got := recs[0]
	if got.ID != "1" || got.UserID != "farmer-1" || got.Source != record.SourceLocal {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.SyncedAt != "2026-08-01T10:00:01.000Z" {
		t.Errorf("expected syncedAt round-trip, got %q", got.SyncedAt)
	}
	if got.Payload["value"] != "1" {
		t.Errorf("unexpected payload: %v", got.Payload)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("1", "2026-08-01T10:00:00.000Z")
	if err := store.Upsert(ctx, "transactions", rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	rec.Payload = map[string]any{"value": "updated"}
	rec.UpdatedAt = "2026-08-01T11:00:00.000Z"
	rec.SyncedAt = "2026-08-01T11:00:01.000Z"
	if err := store.Upsert(ctx, "transactions", rec); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	recs, err := store.Load(ctx, "transactions")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record after replace, got %d", len(recs))
	}
	if recs[0].Payload["value"] != "updated" || recs[0].SyncedAt == "" {
		t.Errorf("expected replaced row, got %+v", recs[0])
	}
}

func TestLoad_NewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, rec := range []*record.Record{
		testRecord("old", "2026-08-01T10:00:00.000Z"),
		testRecord("new", "2026-08-03T10:00:00.000Z"),
		testRecord("mid", "2026-08-02T10:00:00.000Z"),
	} {
		if err := store.Upsert(ctx, "sales", rec); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	recs, err := store.Load(ctx, "sales")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var ids []string
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	if len(ids) != 3 || ids[0] != "new" || ids[1] != "mid" || ids[2] != "old" {
		t.Errorf("expected newest-first order, got %v", ids)
	}
}

func TestLoad_CollectionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "sales", testRecord("s1", "2026-08-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Upsert(ctx, "feed", testRecord("f1", "2026-08-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	recs, err := store.Load(ctx, "sales")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "s1" {
		t.Errorf("expected only the sales record, got %+v", recs)
	}
}

func TestSaveAll_OverwritesCollection(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "production", testRecord("stale", "2026-07-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	err := store.SaveAll(ctx, "production", []*record.Record{
		testRecord("a", "2026-08-01T10:00:00.000Z"),
		testRecord("b", "2026-08-02T10:00:00.000Z"),
	})
	if err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	recs, err := store.Load(ctx, "production")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected exactly the new records, got %d", len(recs))
	}
	for _, r := range recs {
		if r.ID == "stale" {
			t.Error("expected stale record removed by SaveAll")
		}
	}
}

func TestSaveAll_Empty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "feed", testRecord("1", "2026-08-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.SaveAll(ctx, "feed", nil); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	recs, err := store.Load(ctx, "feed")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty collection, got %d records", len(recs))
	}
}

func TestRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "sales", testRecord("1", "2026-08-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := store.Remove(ctx, "sales", "1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove(ctx, "sales", "1"); err != nil {
		t.Fatalf("expected repeated Remove to be a no-op, got %v", err)
	}

	recs, err := store.Load(ctx, "sales")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected empty collection, got %d records", len(recs))
	}
}

func TestLoad_SkipsCorruptPayload(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "sales", testRecord("good", "2026-08-01T10:00:00.000Z")); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	_, err := database.Exec(`
		INSERT INTO records (collection, id, user_id, source, payload, created_at, updated_at)
		VALUES ('sales', 'bad', 'farmer-1', 'local', '{not json', '2026-08-02T10:00:00.000Z', '2026-08-02T10:00:00.000Z')`)
	if err != nil {
		t.Fatalf("failed to insert corrupt row: %v", err)
	}

	recs, err := store.Load(ctx, "sales")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "good" {
		t.Errorf("expected corrupt row skipped, got %+v", recs)
	}
}

func TestUpsert_NilPayloadStoredAsEmptyObject(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	rec := testRecord("1", "2026-08-01T10:00:00.000Z")
	rec.Payload = nil
	if err := store.Upsert(ctx, "feed", rec); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	recs, err := store.Load(ctx, "feed")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(recs) != 1 || recs[0].Payload == nil || len(recs[0].Payload) != 0 {
		t.Errorf("expected empty payload map, got %+v", recs)
	}
}

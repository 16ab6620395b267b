// Package sqlite contains the SQLite implementation of the local record
// store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/core/record"
)

// RecordStore implements secondary.RecordStore with SQLite.
type RecordStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRecordStore creates a new SQLite record store.
func NewRecordStore(db *sql.DB, log zerolog.Logger) *RecordStore {
	return &RecordStore{db: db, log: log.With().Str("component", "localstore").Logger()}
}

const recordSelectCols = "id, user_id, source, payload, created_at, updated_at, synced_at"

// Load returns all records for the collection, newest-first. Rows whose
// payload no longer parses are logged and skipped so a single corrupt row
// never blocks the caller.
func (s *RecordStore) Load(ctx context.Context, collection string) ([]*record.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordSelectCols+" FROM records WHERE collection = ? ORDER BY created_at DESC, id DESC",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make([]*record.Record, 0)
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if rec == nil {
			continue // corrupt payload, logged and skipped
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// SaveAll overwrites the full collection inside one transaction.
func (s *RecordStore) SaveAll(ctx context.Context, collection string, records []*record.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	for _, rec := range records {
		if err := insertRecord(ctx, tx, collection, rec); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}

// Upsert replaces the record with a matching id, or inserts it.
func (s *RecordStore) Upsert(ctx context.Context, collection string, rec *record.Record) error {
	payload, err := marshalPayload(rec)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, user_id, source, payload, created_at, updated_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			user_id = excluded.user_id,
			source = excluded.source,
			payload = excluded.payload,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at`,
		collection, rec.ID, rec.UserID, string(rec.Source), payload,
		rec.CreatedAt, rec.UpdatedAt, nullable(rec.SyncedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// Remove deletes the record with a matching id. No-op if absent.
func (s *RecordStore) Remove(ctx context.Context, collection string, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE collection = ? AND id = ?", collection, id,
	); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one row. A row whose payload does not parse returns
// (nil, nil): the row is treated as absent rather than poisoning the load.
func (s *RecordStore) scanRecord(sc scanner) (*record.Record, error) {
	var (
		rec      record.Record
		source   string
		payload  string
		syncedAt sql.NullString
	)
	if err := sc.Scan(&rec.ID, &rec.UserID, &source, &payload,
		&rec.CreatedAt, &rec.UpdatedAt, &syncedAt); err != nil {
		return nil, err
	}
	rec.Source = record.Source(source)
	rec.SyncedAt = syncedAt.String

	if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
		s.log.Warn().Str("id", rec.ID).Err(err).Msg("corrupt record payload, skipping row")
		return nil, nil
	}
	return &rec, nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, collection string, rec *record.Record) error {
	payload, err := marshalPayload(rec)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO records (collection, id, user_id, source, payload, created_at, updated_at, synced_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		collection, rec.ID, rec.UserID, string(rec.Source), payload,
		rec.CreatedAt, rec.UpdatedAt, nullable(rec.SyncedAt),
	); err != nil {
		return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
	}
	return nil
}

func marshalPayload(rec *record.Record) (string, error) {
	if rec.Payload == nil {
		return "{}", nil
	}
	data, err := json.Marshal(rec.Payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload for %s: %w", rec.ID, err)
	}
	return string(data), nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs. Single source of
// truth: tests build their in-memory databases from GetSchemaSQL(), so any
// column referenced by adapter code that is missing here fails immediately
// with "no such column".
const SchemaSQL = `
-- Records (one row per record, one logical bucket per collection name)
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	user_id TEXT NOT NULL DEFAULT 'anonymous',
	source TEXT NOT NULL CHECK(source IN ('local', 'remote', 'demo')) DEFAULT 'local',
	payload TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	synced_at TEXT,
	PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_records_collection_created
	ON records(collection, created_at DESC);
`

// GetSchemaSQL returns the schema DDL.
func GetSchemaSQL() string {
	return SchemaSQL
}

// InitSchema applies the schema to the given database.
func InitSchema(database *sql.DB) error {
	_, err := database.Exec(SchemaSQL)
	return err
}

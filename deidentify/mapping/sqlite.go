package mapping

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/codeninja55/go-radx/deidentify/engineerr"
)

// SQLiteStore is a Store backed by a SQLite table, the composite
// primary key and upsert-returning contract copied directly from
// DBDicomMapping.add_or_get_mapping: (value_type, old_value,
// scope_type, scope_value) is the primary key; a conflicting insert
// is turned into a no-op update that still RETURNING-s the row's
// new_value, so one round trip always yields the value now stored.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// OpenSQLiteStore opens (creating if necessary) a SQLite-backed
// mapping store at dsn, e.g. "file:mapping.db?_busy_timeout=5000".
func OpenSQLiteStore(dsn, table string) (*SQLiteStore, error) {
	if table == "" {
		table = "deidentify_mapping"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, engineerr.MappingStoreError("failed to open mapping store", err)
	}

	createStmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			value_type TEXT NOT NULL,
			old_value TEXT NOT NULL,
			scope_type TEXT NOT NULL,
			scope_value TEXT NOT NULL,
			new_value TEXT NOT NULL,
			PRIMARY KEY (value_type, old_value, scope_type, scope_value)
		);`, table)
	if _, err := db.Exec(createStmt); err != nil {
		db.Close()
		return nil, engineerr.MappingStoreError("failed to create mapping table", err)
	}

	return &SQLiteStore{db: db, table: table}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LookupOrInsert(ctx context.Context, key Key, candidateNewValue string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (value_type, old_value, scope_type, scope_value, new_value)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (value_type, old_value, scope_type, scope_value)
		 DO UPDATE SET old_value = excluded.old_value
		 RETURNING new_value;`, s.table)

	row := s.db.QueryRowContext(ctx, query,
		string(key.ValueType), key.OldValue, string(key.ScopeType), key.ScopeValue, candidateNewValue)

	var stored string
	if err := row.Scan(&stored); err != nil {
		return "", engineerr.MappingStoreError("upsert-returning failed", err)
	}
	return stored, nil
}

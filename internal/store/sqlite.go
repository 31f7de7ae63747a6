package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/fiberna/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteLog stores records in a SQLite database.
type SQLiteLog struct {
	db   *sql.DB
	path string
	ids  IDGenerator
}

// OpenSQLite creates or opens a SQLite database at path (":memory:" is allowed)
// and applies the pragmas and schema. This function is idempotent.
// If ids is nil, UUIDv7Generator is used.
func OpenSQLite(path string, ids IDGenerator) (*SQLiteLog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection also keeps
	// a ":memory:" database alive for the lifetime of the log.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &SQLiteLog{db: db, path: path, ids: ids}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Location implements Log.
func (l *SQLiteLog) Location() string { return l.path }

// Close closes the database connection.
func (l *SQLiteLog) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Init implements Log. The schema is applied by OpenSQLite, so Init only
// verifies the database is reachable.
func (l *SQLiteLog) Init(ctx context.Context) error {
	if err := l.db.PingContext(ctx); err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "initialize", Err: err}
	}
	return nil
}

// ReadAll returns every record ordered by seq.
func (l *SQLiteLog) ReadAll(ctx context.Context) ([]ir.CalculationRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT seq, core_material, core_ri, cladding_material, cladding_ri, na
		FROM calculations
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	records := []ir.CalculationRecord{}
	for rows.Next() {
		var (
			seq int
			rec ir.CalculationRecord
		)
		if err := rows.Scan(&seq, &rec.CoreMaterial, &rec.CoreRI, &rec.CladdingMaterial, &rec.CladdingRI, &rec.NA); err != nil {
			return records, &ir.CorruptStoreError{Location: l.path, Line: seq, Reason: "unreadable row", Err: err}
		}
		if err := rec.Validate(); err != nil {
			return records, &ir.CorruptStoreError{Location: l.path, Line: seq, Reason: err.Error()}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return records, fmt.Errorf("iterate calculations: %w", err)
	}

	return records, nil
}

// Append inserts rec as a new row with a fresh ID.
func (l *SQLiteLog) Append(ctx context.Context, rec ir.CalculationRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO calculations
		(id, core_material, core_ri, cladding_material, cladding_ri, na)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		l.ids.Generate(),
		rec.CoreMaterial,
		rec.CoreRI,
		rec.CladdingMaterial,
		rec.CladdingRI,
		rec.NA,
	)
	if err != nil {
		return &ir.StoreWriteError{Location: l.path, Op: "append", Err: err}
	}
	return nil
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Log methods when available.
func (l *SQLiteLog) DB() *sql.DB {
	return l.db
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (l *SQLiteLog) verifyPragma(name, expected string) error {
	var value string
	if err := l.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
)

// SQLiteBackend stores each page document as one JSON row. It serves local
// development and tests; production runs against Firestore.
type SQLiteBackend struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS page_documents (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL
);`

// OpenSQLite opens (creating if needed) a SQLite-backed document collection.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single writer: sqlite serializes writes anyway, and BEGIN IMMEDIATE
	// transactions below rely on it.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := b.db.QueryRowContext(ctx, `SELECT 1 FROM page_documents WHERE name = ?`, name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", name, err)
	}
	return true, nil
}

func (b *SQLiteBackend) Get(ctx context.Context, name string) (map[string]any, bool, error) {
	var raw string
	err := b.db.QueryRowContext(ctx, `SELECT data FROM page_documents WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", name, err)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return fields, true, nil
}

func (b *SQLiteBackend) Apply(ctx context.Context, name string, fields map[string]any) error {
	return b.inTx(ctx, func(tx *sql.Tx) error {
		current, _, err := readTx(ctx, tx, name)
		if err != nil {
			return err
		}
		if current == nil {
			current = make(map[string]any, len(fields)+1)
		}
		for k, v := range fields {
			current[k] = v
		}
		current[constants.LastUpdatedField] = time.Now().UTC().Format(time.RFC3339Nano)
		return writeTx(ctx, tx, name, current)
	})
}

func (b *SQLiteBackend) ReadModifyWrite(ctx context.Context, name, field string, mutate func(current any, fieldExists bool) (any, error)) error {
	return b.inTx(ctx, func(tx *sql.Tx) error {
		current, ok, err := readTx(ctx, tx, name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("document %q: %w", name, common.ErrNotFound)
		}
		value, fieldExists := current[field]
		updated, err := mutate(value, fieldExists)
		if err != nil {
			return err
		}
		current[field] = updated
		current[constants.LastUpdatedField] = time.Now().UTC().Format(time.RFC3339Nano)
		return writeTx(ctx, tx, name, current)
	})
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func readTx(ctx context.Context, tx *sql.Tx, name string) (map[string]any, bool, error) {
	var raw string
	err := tx.QueryRowContext(ctx, `SELECT data FROM page_documents WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return fields, true, nil
}

func writeTx(ctx context.Context, tx *sql.Tx, name string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO page_documents (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`, name, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

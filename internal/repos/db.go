package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// KV is the storage port every repository goes through. Values are
// serialized records; the port knows nothing about their shape.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// OpenDB opens the SQL backend for driver "sqlite" or "postgres" and
// makes sure the records table exists.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// every new connection to :memory: would be an empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS records(
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT
)`)
	return err
}

// SQLKV stores each key as one row of the records table.
type SQLKV struct{ db *sqlx.DB }

func NewSQLKV(db *sqlx.DB) *SQLKV { return &SQLKV{db: db} }

func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	var body string
	err := s.db.GetContext(ctx, &body, s.db.Rebind(`SELECT body FROM records WHERE name = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return body, true, nil
}

func (s *SQLKV) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO records(name, body, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`), key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM records WHERE name = ?`), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

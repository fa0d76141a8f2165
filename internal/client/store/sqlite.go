package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/agrivision/agrivision/internal/client/store/migrations"
	"github.com/agrivision/agrivision/internal/dbx"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the key/value surface in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]func(Key, string)
	nextSub int
}

// Open opens (or creates) the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return &SQLiteStore{db: db, subs: make(map[int]func(Key, string))}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Get(ctx context.Context, key Key) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, string(key)).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key Key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, string(key), value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	s.notify(key, value)
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key Key) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	s.notify(key, "")
	return nil
}

func (s *SQLiteStore) ClearSession(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range SessionKeys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, string(key)); err != nil {
				return fmt.Errorf("failed to clear kv[%s]: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, key := range SessionKeys {
		s.notify(key, "")
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[Key]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[Key]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[Key(key)] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) Subscribe(handler func(Key, string)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = handler

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *SQLiteStore) notify(key Key, newValue string) {
	s.mu.Lock()
	handlers := make([]func(Key, string), 0, len(s.subs))
	for _, h := range s.subs {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	for _, h := range handlers {
		h(key, newValue)
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

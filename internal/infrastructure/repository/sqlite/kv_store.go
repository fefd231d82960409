package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"

	crerr "github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	qb "github.com/dinkanimations/squadbets/internal/platform/querybuilder"
)

const kvTable = "kv_entries"

const schema = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (namespace, key)
	)
`

// Open opens the database file in WAL mode and makes sure the table exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	absPath, err := filepath.Abs(strings.TrimSpace(path))
	if err != nil {
		return nil, crerr.Wrap(err, "resolve sqlite path")
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, crerr.Wrap(err, "open sqlite")
	}
	// One writer at a time.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, crerr.Wrap(err, "init sqlite")
		}
	}
	return db, nil
}

// KVStore persists season values in a local sqlite file.
type KVStore struct {
	db        *sql.DB
	namespace string
}

func NewKVStore(db *sql.DB, namespace string) *KVStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{db: db, namespace: namespace}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.Select("value").From(kvTable).
		Where(qb.Eq("namespace", s.namespace), qb.Eq("key", key)).
		PlaceholderFormat(qb.Question).
		ToSQL()
	if err != nil {
		return "", false, crerr.Wrap(err, "build select kv entry query")
	}

	var value string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, crerr.Wrapf(err, "select kv entry %q", key)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query, args, err := qb.InsertInto(kvTable).
		Columns("namespace", "key", "value").
		Values(s.namespace, key, value).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		PlaceholderFormat(qb.Question).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build upsert kv entry query")
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert kv entry %q", key)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(kvTable).
		Where(qb.Eq("namespace", s.namespace), qb.Eq("key", key)).
		PlaceholderFormat(qb.Question).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete kv entry query")
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete kv entry %q", key)
	}
	return nil
}

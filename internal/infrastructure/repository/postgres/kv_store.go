package postgres

import (
	"context"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	qb "github.com/dinkanimations/squadbets/internal/platform/querybuilder"
)

const kvTable = "kv_entries"

type kvRow struct {
	Value string `db:"value"`
}

// KVStore persists season values in the kv_entries table, scoped by namespace.
type KVStore struct {
	db        *sqlx.DB
	namespace string
}

func NewKVStore(db *sqlx.DB, namespace string) *KVStore {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{db: db, namespace: namespace}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := qb.Select("value").From(kvTable).
		Where(
			qb.Eq("namespace", s.namespace),
			qb.Eq("key", key),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return "", false, crerr.Wrap(err, "build select kv entry query")
	}

	var row kvRow
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, crerr.Wrapf(err, "select kv entry %q", key)
	}
	return row.Value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query, args, err := qb.InsertInto(kvTable).
		Columns("namespace", "key", "value").
		Values(s.namespace, key, value).
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build upsert kv entry query")
	}

	if err := s.exec(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "upsert kv entry %q", key)
	}
	return nil
}

func (s *KVStore) Remove(ctx context.Context, key string) error {
	query, args, err := qb.DeleteFrom(kvTable).
		Where(
			qb.Eq("namespace", s.namespace),
			qb.Eq("key", key),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build delete kv entry query")
	}

	if err := s.exec(ctx, query, args...); err != nil {
		return crerr.Wrapf(err, "delete kv entry %q", key)
	}
	return nil
}

func (s *KVStore) exec(ctx context.Context, query string, args ...any) error {
	return withStatementRetry(ctx, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

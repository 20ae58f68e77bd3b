package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvRepo implements KVRepo on the kv_records table.
type kvRepo struct {
	db *sql.DB
}

func (r *kvRepo) Get(ctx context.Context, namespace string) ([]byte, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(KVRecordsTable.Name)).
		Where(entsql.EQ("namespace", namespace)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", namespace, err)
	}
	return []byte(value), nil
}

func (r *kvRepo) Put(ctx context.Context, namespace string, value []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(KVRecordsTable.Name).
		Columns("namespace", "value", "updated_at").
		Values(namespace, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("namespace"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", namespace, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, namespace string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(KVRecordsTable.Name).
		Where(entsql.EQ("namespace", namespace)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", namespace, err)
	}
	return nil
}

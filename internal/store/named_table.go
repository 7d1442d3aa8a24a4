// Package store implements ledger.Table over PostgreSQL through database/sql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NamedTable stores entities that consist of an id and a name. The table name
// is trusted and must come from a constant.
type NamedTable[T any] struct {
	db    *sql.DB
	table string
	build func(id uuid.UUID, name string) T
	split func(T) (uuid.UUID, string)
}

func NewNamedTable[T any](db *sql.DB, table string, build func(uuid.UUID, string) T, split func(T) (uuid.UUID, string)) *NamedTable[T] {
	return &NamedTable[T]{db: db, table: table, build: build, split: split}
}

func (t *NamedTable[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, t.table)

	var exists bool
	if err := t.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *NamedTable[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, t.table)
	return t.query(ctx, query)
}

func (t *NamedTable[T]) ListPage(ctx context.Context, offset, limit int) ([]T, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id OFFSET $1 LIMIT $2`, t.table)
	return t.query(ctx, query, offset, limit)
}

func (t *NamedTable[T]) Get(ctx context.Context, id uuid.UUID) (T, bool, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id = $1`, t.table)

	var (
		zero  T
		rowID uuid.UUID
		name  string
	)
	err := t.db.QueryRowContext(ctx, query, id).Scan(&rowID, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	return t.build(rowID, name), true, nil
}

func (t *NamedTable[T]) Insert(ctx context.Context, entity T) error {
	id, name := t.split(entity)
	query := fmt.Sprintf(`INSERT INTO %s (id, name) VALUES ($1, $2)`, t.table)

	_, err := t.db.ExecContext(ctx, query, id, name)
	return err
}

func (t *NamedTable[T]) Update(ctx context.Context, entity T) (bool, error) {
	id, name := t.split(entity)
	query := fmt.Sprintf(`UPDATE %s SET name = $1 WHERE id = $2`, t.table)

	result, err := t.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return false, err
	}
	return Matched(result)
}

func (t *NamedTable[T]) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table)

	result, err := t.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	return Matched(result)
}

func (t *NamedTable[T]) query(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		var (
			id   uuid.UUID
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		items = append(items, t.build(id, name))
	}
	return items, rows.Err()
}

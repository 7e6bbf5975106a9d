package metadata

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/devfolio/internal/dbx"
)

// Table is the SQLite implementation of Repository. It runs on either a
// connection or a transaction.
type Table struct {
	db dbx.DBTX
}

func NewTable(db dbx.DBTX) *Table {
	return &Table{db: db}
}

func inClause(keys []string) (string, []any) {
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",") + ")", args
}

func (t *Table) Lookup(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if len(keys) == 0 {
		return map[string][]byte{}, nil
	}
	in, args := inClause(keys)
	out, err := t.query(ctx, `SELECT key, value FROM metadata WHERE key IN `+in, args...)
	if err != nil {
		return nil, fmt.Errorf("metadata: lookup %s: %w", strings.Join(keys, ","), err)
	}
	return out, nil
}

func (t *Table) Snapshot(ctx context.Context) (map[string][]byte, error) {
	out, err := t.query(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("metadata: snapshot: %w", err)
	}
	return out, nil
}

func (t *Table) query(ctx context.Context, q string, args ...any) (map[string][]byte, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out[key] = value
	}
	return out, rows.Err()
}

func (t *Table) Put(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]string, len(keys))
	args := make([]any, 0, 2*len(keys))
	for i, k := range keys {
		values[i] = "(?, ?)"
		args = append(args, k, entries[k])
	}

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES `+strings.Join(values, ", ")+
			` ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		args...)
	if err != nil {
		return fmt.Errorf("metadata: put %s: %w", strings.Join(keys, ","), err)
	}
	return nil
}

func (t *Table) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	in, args := inClause(keys)
	if _, err := t.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN `+in, args...); err != nil {
		return fmt.Errorf("metadata: delete %s: %w", strings.Join(keys, ","), err)
	}
	return nil
}

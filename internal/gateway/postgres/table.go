package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
)

var errUnfiltered = errors.New("refusing to write without a filter")

func (c *Client) Insert(ctx context.Context, table string, values map[string]any) (string, error) {
	ctx, span := tracer.Start(ctx, "Client.Insert")
	defer span.End()

	query, args := insertSQL(table, values)

	var id *string
	if err := c.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", fmt.Errorf("insert %s: %w", table, translateError(err))
	}
	if id == nil {
		return "", nil
	}

	return *id, nil
}

func (c *Client) Update(ctx context.Context, table string, values map[string]any, filter gateway.Filter) error {
	if len(filter) == 0 {
		return fmt.Errorf("update %s: %w", table, errUnfiltered)
	}

	ctx, span := tracer.Start(ctx, "Client.Update")
	defer span.End()

	query, args := updateSQL(table, values, filter)
	if _, err := c.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", table, translateError(err))
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, table string, filter gateway.Filter) error {
	if len(filter) == 0 {
		return fmt.Errorf("delete %s: %w", table, errUnfiltered)
	}

	ctx, span := tracer.Start(ctx, "Client.Delete")
	defer span.End()

	query, args := deleteSQL(table, filter)
	if _, err := c.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", table, translateError(err))
	}

	return nil
}

func insertSQL(table string, values map[string]any) (string, []any) {
	cols := sortedKeys(values)
	if len(cols) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING id::text", quoteName(table)), nil
	}

	names := make([]string, 0, len(cols))
	params := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		names = append(names, quoteName(col))
		params = append(params, fmt.Sprintf("$%d", i+1))
		args = append(args, values[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id::text",
		quoteName(table), strings.Join(names, ", "), strings.Join(params, ", "))
	return query, args
}

func updateSQL(table string, values map[string]any, filter gateway.Filter) (string, []any) {
	cols := sortedKeys(values)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+len(filter))
	for _, col := range cols {
		args = append(args, values[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", quoteName(col), len(args)))
	}

	where, args := whereClause(filter, args)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", quoteName(table), strings.Join(sets, ", "), where)
	return query, args
}

func deleteSQL(table string, filter gateway.Filter) (string, []any) {
	where, args := whereClause(filter, nil)
	return fmt.Sprintf("DELETE FROM %s WHERE %s", quoteName(table), where), args
}

// whereClause appends the filter values to args and returns the conjunction of
// equality tests on them.
func whereClause(filter gateway.Filter, args []any) (string, []any) {
	conds := make([]string, 0, len(filter))
	for _, col := range sortedKeys(filter) {
		v := filter[col]
		if v == nil {
			conds = append(conds, quoteName(col)+" IS NULL")
			continue
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", quoteName(col), len(args)))
	}
	return strings.Join(conds, " AND "), args
}

// quoteName quotes a possibly schema-qualified name.
func quoteName(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

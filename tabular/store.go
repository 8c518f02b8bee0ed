// Package tabular is a small ephemeral table store with two backends:
// SQLite through modernc.org/sqlite and an in-process go-memdb database.
// Both enforce the same Table rules, so callers can swap one for the other.
package tabular

import "context"

// Store creates tables and inserts rows. Implementations are safe for
// concurrent use.
type Store interface {
	// CreateTableIfAbsent creates t unless a table of that name exists.
	// An existing table keeps its original definition.
	CreateTableIfAbsent(ctx context.Context, t Table) error
	// InsertOne inserts a single row and reports the rows affected.
	InsertOne(ctx context.Context, table string, row Row) (int64, error)
	// Count reports how many rows table holds.
	Count(ctx context.Context, table string) (int64, error)
	Close() error
}

package tabular

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const memoryDSN = ":memory:"

// SQLiteStore keeps its tables in a SQLite database. The catalog of tables
// created through the store is held alongside so rows can be checked
// before they reach the driver.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	tables map[string]Table
	closed bool
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens dsn, or a private in-memory database when dsn is empty.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = memoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every connection to :memory: is a fresh database
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &SQLiteStore{db: db, tables: make(map[string]Table)}, nil
}

func (s *SQLiteStore) CreateTableIfAbsent(ctx context.Context, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.tables[t.Name]; ok {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, t.DDL()); err != nil {
		return fmt.Errorf("create table %s: %w", t.Name, err)
	}
	s.tables[t.Name] = t
	return nil
}

func (s *SQLiteStore) lookup(name string) (Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Table{}, ErrClosed
	}
	t, ok := s.tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrNoSuchTable, name)
	}
	return t, nil
}

func (s *SQLiteStore) InsertOne(ctx context.Context, table string, row Row) (int64, error) {
	t, err := s.lookup(table)
	if err != nil {
		return 0, err
	}
	row, err = t.normalize(row)
	if err != nil {
		return 0, err
	}

	cols := t.sortedColumns(row)
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = row[c]
	}
	var stmt string
	if len(cols) == 0 {
		stmt = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", t.Name)
	} else {
		stmt = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			t.Name,
			strings.Join(cols, ", "),
			strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
		)
	}

	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		if pk, ok := t.PrimaryKey(); ok && row[pk.Name] != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, fmt.Errorf("%w: %s.%s = %v", ErrDuplicateKey, t.Name, pk.Name, row[pk.Name])
		}
		return 0, fmt.Errorf("insert into %s: %w", t.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Count(ctx context.Context, table string) (int64, error) {
	t, err := s.lookup(table)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.Name, err)
	}
	return n, nil
}

// Close releases the database. A closed store rejects every call with ErrClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

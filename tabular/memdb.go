package tabular

import (
	"context"
	"fmt"
	"sync/atomic"

	memdb "github.com/hashicorp/go-memdb"
)

const (
	catalogTable = "catalog"
	rowsTable    = "rows"
)

// catalogEntry describes one user table. NextKey is the key handed to the
// next row that leaves its primary key out.
type catalogEntry struct {
	Name    string
	Table   Table
	NextKey int64
	Rows    int64
}

// rowEntry is one user row, keyed by table and primary key.
type rowEntry struct {
	Table  string
	Key    int64
	Values Row
}

func memdbSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			catalogTable: {
				Name: catalogTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Name"},
					},
				},
			},
			rowsTable: {
				Name: rowsTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:   "id",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "Table"},
								&memdb.IntFieldIndex{Field: "Key"},
							},
						},
					},
				},
			},
		},
	}
}

// MemDBStore keeps tables in a go-memdb database. User tables are not
// memdb tables: their definitions live in a catalog table and every row of
// every table lives in one rows table.
type MemDBStore struct {
	db     *memdb.MemDB
	closed atomic.Bool
}

var _ Store = (*MemDBStore)(nil)

func NewMemDB() (*MemDBStore, error) {
	db, err := memdb.NewMemDB(memdbSchema())
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}
	return &MemDBStore{db: db}, nil
}

func (m *MemDBStore) CreateTableIfAbsent(_ context.Context, t Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrClosed
	}

	txn := m.db.Txn(true)
	defer txn.Abort()

	old, err := txn.First(catalogTable, "id", t.Name)
	if err != nil {
		return err
	} else if old != nil {
		return nil
	}

	if err := txn.Insert(catalogTable, &catalogEntry{Name: t.Name, Table: t, NextKey: 1}); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (m *MemDBStore) InsertOne(_ context.Context, table string, row Row) (int64, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}

	txn := m.db.Txn(true)
	defer txn.Abort()

	entry, err := m.entry(txn, table)
	if err != nil {
		return 0, err
	}
	row, err = entry.Table.normalize(row)
	if err != nil {
		return 0, err
	}

	next := *entry
	key := next.NextKey
	if pk, ok := entry.Table.PrimaryKey(); ok {
		if v, set := row[pk.Name].(int64); set {
			key = v
		} else {
			row[pk.Name] = key
		}
	}

	dup, err := txn.First(rowsTable, "id", table, key)
	if err != nil {
		return 0, err
	} else if dup != nil {
		return 0, fmt.Errorf("%w: %s = %d", ErrDuplicateKey, table, key)
	}

	if err := txn.Insert(rowsTable, &rowEntry{Table: table, Key: key, Values: row}); err != nil {
		return 0, err
	}
	next.NextKey = max(next.NextKey, key+1)
	next.Rows++
	if err := txn.Insert(catalogTable, &next); err != nil {
		return 0, err
	}
	txn.Commit()
	return 1, nil
}

func (m *MemDBStore) Count(_ context.Context, table string) (int64, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}

	txn := m.db.Txn(false)
	defer txn.Abort()

	entry, err := m.entry(txn, table)
	if err != nil {
		return 0, err
	}
	return entry.Rows, nil
}

func (m *MemDBStore) entry(txn *memdb.Txn, table string) (*catalogEntry, error) {
	raw, err := txn.First(catalogTable, "id", table)
	if err != nil {
		return nil, err
	} else if raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchTable, table)
	}
	return raw.(*catalogEntry), nil
}

// Close marks the store closed. memdb holds no outside resources.
func (m *MemDBStore) Close() error {
	m.closed.Store(true)
	return nil
}

package tabular

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrNoSuchTable       = errors.New("no such table")
	ErrMissingColumn     = errors.New("missing value for not null column")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrTypeMismatch      = errors.New("value does not match column type")
	ErrDuplicateKey      = errors.New("duplicate primary key")
	ErrInvalidTable      = errors.New("invalid table definition")
	ErrClosed            = errors.New("store closed")
)

type ColumnType int

const (
	Integer ColumnType = iota + 1
	Text
)

func (ct ColumnType) String() string {
	switch ct {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(ct))
	}
}

type Column struct {
	Name string
	Type ColumnType
	// PrimaryKey columns must be Integer. A row that leaves the key out is
	// assigned the next free value.
	PrimaryKey bool
	NotNull    bool
}

type Table struct {
	Name    string
	Columns []Column
}

// Row maps column names to values: int-family values for Integer columns,
// strings for Text columns, nil for NULL.
type Row map[string]any

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// Validate checks identifiers, column types and the primary key.
func (t Table) Validate() error {
	if err := checkIdentifier(t.Name); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: %s has no columns", ErrInvalidTable, t.Name)
	}
	seen := make(map[string]bool, len(t.Columns))
	keys := 0
	for _, c := range t.Columns {
		if err := checkIdentifier(c.Name); err != nil {
			return err
		}
		lower := strings.ToLower(c.Name)
		if seen[lower] {
			return fmt.Errorf("%w: %s.%s declared twice", ErrInvalidTable, t.Name, c.Name)
		}
		seen[lower] = true

		if c.Type != Integer && c.Type != Text {
			return fmt.Errorf("%w: %s.%s has type %v", ErrInvalidTable, t.Name, c.Name, c.Type)
		}
		if c.PrimaryKey {
			keys++
			if c.Type != Integer {
				return fmt.Errorf("%w: primary key %s.%s must be INTEGER", ErrInvalidTable, t.Name, c.Name)
			}
		}
	}
	if keys > 1 {
		return fmt.Errorf("%w: %s has %d primary keys", ErrInvalidTable, t.Name, keys)
	}
	return nil
}

// Column looks a column up by name.
func (t Table) Column(name string) (Column, bool) {
	i := slices.IndexFunc(t.Columns, func(c Column) bool { return c.Name == name })
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// PrimaryKey returns the key column, if the table declares one.
func (t Table) PrimaryKey() (Column, bool) {
	i := slices.IndexFunc(t.Columns, func(c Column) bool { return c.PrimaryKey })
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// DDL renders the CREATE TABLE IF NOT EXISTS statement for t.
func (t Table) DDL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (", t.Name)
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", c.Name, c.Type)
		if c.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		}
		if c.NotNull {
			b.WriteString(" NOT NULL")
		}
	}
	b.WriteString(")")
	return b.String()
}

// normalize checks r against t and returns a copy with integers widened to int64.
func (t Table) normalize(r Row) (Row, error) {
	out := make(Row, len(r))
	for name, v := range r {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, name)
		}
		if v == nil {
			out[name] = nil
			continue
		}
		nv, err := coerce(c, v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, name, err)
		}
		out[name] = nv
	}
	for _, c := range t.Columns {
		if c.NotNull && !c.PrimaryKey && out[c.Name] == nil {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingColumn, t.Name, c.Name)
		}
	}
	return out, nil
}

func coerce(c Column, v any) (any, error) {
	switch c.Type {
	case Integer:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case Text:
		if s, ok := v.(string); ok {
			return s, nil
		}
	default:
		panic(fmt.Sprintf("unexpected column type: %v", c.Type))
	}
	return nil, fmt.Errorf("%w: %T for %v", ErrTypeMismatch, v, c.Type)
}

// sortedColumns returns the names set in r in table order.
func (t Table) sortedColumns(r Row) []string {
	names := make([]string, 0, len(r))
	for _, c := range t.Columns {
		if _, ok := r[c.Name]; ok {
			names = append(names, c.Name)
		}
	}
	return names
}

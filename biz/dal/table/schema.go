package table

import (
	"fmt"
	"strings"
)

// Dialect names as reported by gorm.Dialector.Name.
const (
	DialectSQLite   = "sqlite"
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

// ColumnType is the portable storage class of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
	Bool
)

// Check renders a CHECK expression for the named column.
type Check func(column string) string

// Between constrains a column to the closed range [lo, hi].
func Between(lo, hi int) Check {
	return func(column string) string {
		return fmt.Sprintf("%s BETWEEN %d AND %d", column, lo, hi)
	}
}

// GreaterThan constrains a column to values above lo.
func GreaterThan(lo int) Check {
	return func(column string) string { return fmt.Sprintf("%s > %d", column, lo) }
}

// AtLeast constrains a column to values of at least lo.
func AtLeast(lo int) Check {
	return func(column string) string { return fmt.Sprintf("%s >= %d", column, lo) }
}

// Column describes one stored column.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Check    Check
}

// ForeignKey references a column of another table.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Schema is the declarative definition of a table, rendered to DDL per dialect.
type Schema struct {
	Columns     []Column
	PrimaryKey  string
	ForeignKeys []ForeignKey
}

// References returns the distinct tables this schema points at, in declaration order.
func (s Schema) References() []string {
	var refs []string
	seen := make(map[string]bool, len(s.ForeignKeys))
	for _, fk := range s.ForeignKeys {
		if !seen[fk.RefTable] {
			seen[fk.RefTable] = true
			refs = append(refs, fk.RefTable)
		}
	}
	return refs
}

// CreateSQL renders an idempotent CREATE TABLE statement for dialect.
func (s Schema) CreateSQL(dialect, name string) (string, error) {
	switch dialect {
	case DialectSQLite, DialectMySQL, DialectPostgres:
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}

	lines := make([]string, 0, len(s.Columns)+len(s.ForeignKeys)+1)
	for _, c := range s.Columns {
		lines = append(lines, "  "+columnSQL(dialect, c))
	}
	lines = append(lines, fmt.Sprintf("  PRIMARY KEY (%s)", s.PrimaryKey))
	for _, fk := range s.ForeignKeys {
		lines = append(lines, fmt.Sprintf("  FOREIGN KEY (%s) REFERENCES %s (%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n%s\n)", name, strings.Join(lines, ",\n"))
	switch dialect {
	case DialectSQLite:
		b.WriteString(" STRICT")
	case DialectMySQL:
		b.WriteString(" ENGINE=InnoDB")
	}
	return b.String(), nil
}

func columnSQL(dialect string, c Column) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(typeSQL(dialect, c.Type))
	if !c.Nullable {
		b.WriteString(" NOT NULL")
	}
	var checks []string
	if c.Type == Bool && dialect == DialectSQLite {
		checks = append(checks, c.Name+" IN (0, 1)")
	}
	if c.Check != nil {
		checks = append(checks, c.Check(c.Name))
	}
	if len(checks) > 0 {
		fmt.Fprintf(&b, " CHECK (%s)", strings.Join(checks, " AND "))
	}
	return b.String()
}

func typeSQL(dialect string, t ColumnType) string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		if dialect == DialectMySQL {
			return "FLOAT"
		}
		return "REAL"
	case Bool:
		if dialect == DialectSQLite {
			return "INTEGER"
		}
		return "BOOLEAN"
	default:
		if dialect == DialectMySQL {
			return "VARCHAR(512)"
		}
		return "TEXT"
	}
}

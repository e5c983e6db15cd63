package ddl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbt2ddl/dbt2ddl/internal/schema"
)

// Bare test tags that map to constraints.
const (
	tagNotNull = "not_null"
	tagUnique  = "unique"
)

// ErrMalformedRef indicates a relationships test whose to field does not
// contain a ref('...') expression.
var ErrMalformedRef = errors.New("malformed relationship reference")

// PrimaryKey returns the statement adding the table's primary key, or ""
// when the table has no name or no primary_key entry. The primary_key
// value is inserted verbatim, so a comma-separated column list passes
// through unchanged.
func PrimaryKey(schemaName string, t schema.Table) string {
	if t.Name == "" || t.PrimaryKey == "" {
		return ""
	}
	return fmt.Sprintf("ALTER TABLE %s.%s ADD PRIMARY KEY (%s);", schemaName, t.Name, t.PrimaryKey)
}

// NotNull returns one SET NOT NULL statement per column tagged not_null,
// in column order. Empty when the table has no name.
func NotNull(schemaName string, t schema.Table) []string {
	if t.Name == "" {
		return nil
	}
	var stmts []string
	for _, c := range t.Columns {
		if c.Name == "" || !c.HasTag(tagNotNull) {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s.%s ALTER COLUMN %s SET NOT NULL;",
			schemaName, t.Name, c.Name))
	}
	return stmts
}

// Unique returns one UNIQUE constraint statement per column tagged
// unique, in column order. The constraint name joins schema, table and
// column with underscores. Empty when the table has no name.
func Unique(schemaName string, t schema.Table) []string {
	if t.Name == "" {
		return nil
	}
	var stmts []string
	for _, c := range t.Columns {
		if c.Name == "" || !c.HasTag(tagUnique) {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s.%s ADD CONSTRAINT unique_%s_%s_%s UNIQUE (%s);",
			schemaName, t.Name, schemaName, t.Name, c.Name, c.Name))
	}
	return stmts
}

// ForeignKeys returns one FOREIGN KEY constraint statement per
// relationships test, iterating columns in order and each column's tests
// in order. The destination table comes from the ref expression in the
// to field; a to field without a ref('...') marker pair is an error.
// Empty when the table has no name.
func ForeignKeys(schemaName string, t schema.Table) ([]string, error) {
	if t.Name == "" {
		return nil, nil
	}
	var stmts []string
	for _, c := range t.Columns {
		if c.Name == "" {
			continue
		}
		for _, test := range c.Tests {
			if test.Relationship == nil {
				continue
			}
			destTable, err := parseRef(test.Relationship.To)
			if err != nil {
				return nil, fmt.Errorf("table %s column %s: %w", t.Name, c.Name, err)
			}
			destColumn := test.Relationship.Field
			stmts = append(stmts, fmt.Sprintf(
				"ALTER TABLE %s.%s ADD CONSTRAINT fk_%s_%s_%s_%s_%s FOREIGN KEY (%s) REFERENCES %s.%s (%s);",
				schemaName, t.Name,
				schemaName, t.Name, c.Name, destTable, destColumn,
				c.Name, schemaName, destTable, destColumn))
		}
	}
	return stmts, nil
}

// parseRef extracts the table name from a dbt ref expression such as
// "ref('orders')". The expression may be embedded in surrounding text;
// the name is whatever sits between the first ref(' marker and the next
// ') marker.
func parseRef(expr string) (string, error) {
	const openMark, closeMark = "ref('", "')"
	i := strings.Index(expr, openMark)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, expr)
	}
	rest := expr[i+len(openMark):]
	j := strings.Index(rest, closeMark)
	if j < 0 {
		return "", fmt.Errorf("%w: %q", ErrMalformedRef, expr)
	}
	return rest[:j], nil
}

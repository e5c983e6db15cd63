package ddl

import (
	"bytes"
	"fmt"
)

// Render serializes the result into the final DDL text in two passes:
// first every table's primary-key, not-null and uniqueness statements,
// then every table's foreign-key statements. Foreign keys land last
// across the whole schema so they are less likely to reference a table
// whose constraints have not been applied yet. Tables without foreign
// keys are skipped entirely in the second pass; every table gets a
// header in the first pass, constraints or not.
func (r *Result) Render() []byte {
	var buf bytes.Buffer

	buf.WriteString("-- Adding primary_key, non_null, uniqueness ddl statements \n\n")
	for _, name := range r.names {
		cs := r.sets[name]
		fmt.Fprintf(&buf, "-- Processing table %s\n\n", name)
		if cs.PrimaryKey != "" {
			buf.WriteString(cs.PrimaryKey)
			buf.WriteByte('\n')
		}
		for _, stmt := range cs.NonNull {
			buf.WriteString(stmt)
			buf.WriteByte('\n')
		}
		for _, stmt := range cs.Uniqueness {
			buf.WriteString(stmt)
			buf.WriteByte('\n')
		}
		buf.WriteString("\n\n")
	}

	buf.WriteString("-- Adding foreign key ddl statements \n\n")
	for _, name := range r.names {
		cs := r.sets[name]
		if len(cs.ForeignKeys) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "-- Processing table %s\n\n", name)
		for _, stmt := range cs.ForeignKeys {
			buf.WriteString(stmt)
			buf.WriteByte('\n')
		}
		buf.WriteString("\n\n")
	}

	return buf.Bytes()
}

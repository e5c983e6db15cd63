package ddl

import (
	"fmt"

	"github.com/dbt2ddl/dbt2ddl/internal/schema"
)

// ConstraintSet holds every generated statement for one table, split by
// constraint category.
type ConstraintSet struct {
	PrimaryKey  string // "" when the table declares no primary key
	NonNull     []string
	Uniqueness  []string
	ForeignKeys []string
}

// Result maps table names to their constraint sets, preserving document
// order. A duplicate table name later in the document replaces the
// earlier set but keeps its original position.
type Result struct {
	names []string
	sets  map[string]ConstraintSet
}

// Tables returns the table names in document order.
func (r *Result) Tables() []string {
	return r.names
}

// Set returns the constraint set for the named table.
func (r *Result) Set(name string) ConstraintSet {
	return r.sets[name]
}

// Process validates the document and builds one ConstraintSet per table.
// Validation runs first, so a missing models key or a nameless table
// entry aborts before any statement is generated.
func Process(doc *schema.Document, schemaName string) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	res := &Result{sets: make(map[string]ConstraintSet, len(doc.Models))}
	for _, t := range doc.Models {
		fks, err := ForeignKeys(schemaName, t)
		if err != nil {
			return nil, err
		}
		if _, seen := res.sets[t.Name]; !seen {
			res.names = append(res.names, t.Name)
		}
		res.sets[t.Name] = ConstraintSet{
			PrimaryKey:  PrimaryKey(schemaName, t),
			NonNull:     NotNull(schemaName, t),
			Uniqueness:  Unique(schemaName, t),
			ForeignKeys: fks,
		}
	}
	return res, nil
}

// Summary returns a human-readable summary of the generated statements.
func (r *Result) Summary() string {
	var pks, nonNull, unique, fks int
	for _, name := range r.names {
		cs := r.sets[name]
		if cs.PrimaryKey != "" {
			pks++
		}
		nonNull += len(cs.NonNull)
		unique += len(cs.Uniqueness)
		fks += len(cs.ForeignKeys)
	}
	total := pks + nonNull + unique + fks
	return fmt.Sprintf(
		"Generated %d statements for %d tables (%d primary key, %d not null, %d unique, %d foreign key)",
		total, len(r.names), pks, nonNull, unique, fks)
}

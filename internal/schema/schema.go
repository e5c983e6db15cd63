package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document represents the root of a dbt-style schema file.
type Document struct {
	Models []Table `yaml:"models"`
}

// Table represents one table contract.
type Table struct {
	Name       string   `yaml:"name"`
	PrimaryKey string   `yaml:"primary_key,omitempty"` // single column or comma-separated list, verbatim
	Columns    []Column `yaml:"columns,omitempty"`
}

// Column represents a table column and its test annotations.
type Column struct {
	Name  string `yaml:"name"`
	Tests []Test `yaml:"tests,omitempty"`
}

// Relationship is the payload of a relationships test: a ref expression
// naming the destination table, and the destination column.
type Relationship struct {
	To    string `yaml:"to"`
	Field string `yaml:"field"`
}

// Test is one entry of a column's tests list. dbt allows two shapes: a
// bare string tag (not_null, unique) or a mapping carrying a
// relationships test. At most one of Tag and Relationship is set; a
// mapping test other than relationships leaves both empty and is
// ignored downstream.
type Test struct {
	Tag          string
	Relationship *Relationship
}

// UnmarshalYAML decodes either shape of a test entry.
func (t *Test) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&t.Tag)
	case yaml.MappingNode:
		var body struct {
			Relationships *Relationship `yaml:"relationships"`
		}
		if err := node.Decode(&body); err != nil {
			return fmt.Errorf("parsing test entry at line %d: %w", node.Line, err)
		}
		t.Relationship = body.Relationships
		return nil
	default:
		return fmt.Errorf("unsupported test entry at line %d", node.Line)
	}
}

// HasTag reports whether the column carries the given bare test tag.
func (c Column) HasTag(tag string) bool {
	for _, t := range c.Tests {
		if t.Tag == tag {
			return true
		}
	}
	return false
}

package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoModels indicates the document lacks the required top-level models key.
var ErrNoModels = errors.New("'models' not contained in first level keys of the schema file")

// ErrMissingName indicates a table entry with no name key.
var ErrMissingName = errors.New("table entry does not have a name key")

// Load reads a dbt schema document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return doc, nil
}

// Validate checks the structural requirements of the document: the
// models key must exist and every table entry must carry a name. It
// runs before any extraction so structural errors surface first.
func (d *Document) Validate() error {
	if d.Models == nil {
		return ErrNoModels
	}
	for i, t := range d.Models {
		if t.Name == "" {
			return fmt.Errorf("models[%d]: %w", i, ErrMissingName)
		}
	}
	return nil
}

// Summary returns a human-readable summary of the document.
func (d *Document) Summary() string {
	var totalCols int
	var totalTests int
	for _, t := range d.Models {
		totalCols += len(t.Columns)
		for _, c := range t.Columns {
			totalTests += len(c.Tests)
		}
	}
	return fmt.Sprintf("Found %d tables, %d columns, %d column tests",
		len(d.Models), totalCols, totalTests)
}

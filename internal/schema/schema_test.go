package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleSchema = `
models:
  - name: users
    primary_key: id
    columns:
      - name: id
        tests:
          - not_null
          - unique
      - name: org_id
        tests:
          - relationships:
              to: ref('orgs')
              field: id
  - name: orgs
    primary_key: id
`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	doc, err := Load(writeSchema(t, sampleSchema))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(doc.Models) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(doc.Models))
	}

	users := doc.Models[0]
	if users.Name != "users" {
		t.Errorf("first table = %q, want %q", users.Name, "users")
	}
	if users.PrimaryKey != "id" {
		t.Errorf("users primary key = %q, want %q", users.PrimaryKey, "id")
	}
	if len(users.Columns) != 2 {
		t.Fatalf("users columns = %d, want 2", len(users.Columns))
	}

	id := users.Columns[0]
	if len(id.Tests) != 2 {
		t.Fatalf("id tests = %d, want 2", len(id.Tests))
	}
	if id.Tests[0].Tag != "not_null" || id.Tests[1].Tag != "unique" {
		t.Errorf("id tags = %q, %q; want not_null, unique", id.Tests[0].Tag, id.Tests[1].Tag)
	}

	orgID := users.Columns[1]
	if len(orgID.Tests) != 1 {
		t.Fatalf("org_id tests = %d, want 1", len(orgID.Tests))
	}
	rel := orgID.Tests[0].Relationship
	if rel == nil {
		t.Fatal("org_id test should be a relationship")
	}
	if rel.To != "ref('orgs')" {
		t.Errorf("relationship to = %q, want %q", rel.To, "ref('orgs')")
	}
	if rel.Field != "id" {
		t.Errorf("relationship field = %q, want %q", rel.Field, "id")
	}

	if doc.Models[1].Columns != nil {
		t.Errorf("orgs columns should be absent, got %v", doc.Models[1].Columns)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/schema.yml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeSchema(t, "models: [\n"))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoad_UnknownMappingTest(t *testing.T) {
	doc, err := Load(writeSchema(t, `
models:
  - name: users
    columns:
      - name: status
        tests:
          - accepted_values:
              values: [active, inactive]
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	test := doc.Models[0].Columns[0].Tests[0]
	if test.Tag != "" || test.Relationship != nil {
		t.Errorf("unknown mapping test should decode empty, got %+v", test)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name:    "missing models key",
			doc:     &Document{},
			wantErr: ErrNoModels,
		},
		{
			name:    "table without name",
			doc:     &Document{Models: []Table{{Name: "users"}, {PrimaryKey: "id"}}},
			wantErr: ErrMissingName,
		},
		{
			name: "valid document",
			doc:  &Document{Models: []Table{{Name: "users"}}},
		},
		{
			name: "empty models list",
			doc:  &Document{Models: []Table{}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.doc.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_MissingModelsKey(t *testing.T) {
	doc, err := Load(writeSchema(t, "sources:\n  - name: raw\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !errors.Is(doc.Validate(), ErrNoModels) {
		t.Errorf("Validate = %v, want ErrNoModels", doc.Validate())
	}
}

func TestHasTag(t *testing.T) {
	col := Column{
		Name: "id",
		Tests: []Test{
			{Tag: "not_null"},
			{Relationship: &Relationship{To: "ref('orgs')", Field: "id"}},
		},
	}
	if !col.HasTag("not_null") {
		t.Error("expected not_null tag")
	}
	if col.HasTag("unique") {
		t.Error("unexpected unique tag")
	}
}

func TestSummary(t *testing.T) {
	doc := &Document{Models: []Table{
		{Name: "a", Columns: []Column{{Name: "id", Tests: []Test{{Tag: "not_null"}}}}},
		{Name: "b"},
	}}
	want := "Found 2 tables, 1 columns, 1 column tests"
	if got := doc.Summary(); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

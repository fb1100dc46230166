package gen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vsforge/gram/grammar"
)

func loadTestDocument(t *testing.T, source string) *Document {
	t.Helper()

	var data map[string]any
	if err := (Codec{}).Decode([]byte(source), &data); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	doc, err := LoadDocument(data)
	if err != nil {
		t.Fatalf("LoadDocument() error = %v", err)
	}

	return doc
}

const testDocument = `{
  "static": {
    "metal": ["copper", "iron"],
    "format": "{\"code\":\"%type%-%metal%\",%attributes%}",
    "template": "default"
  },
  "template": {
    "default": {
      "attributes": {"durability": 100}
    },
    "sturdy": {
      "copyFrom": "default",
      "attributes": {"durability": 500}
    }
  },
  "grammars": [
    {
      "code": "%type%-%metal%",
      "keys": [
        {"key": "type", "value": ["dagger"]},
        {"key": "metal", "value": ["@metal"]}
      ]
    },
    {
      "code": "%type%-%metal%",
      "template": "sturdy",
      "skip": ["*-iron"],
      "keys": [
        {"key": "type", "value": ["sword"]},
        {"key": "metal", "value": ["@metal"]}
      ]
    }
  ],
  "output": "recipes/weapons.json"
}`

func TestLoadDocument(t *testing.T) {
	doc := loadTestDocument(t, testDocument)

	if len(doc.Grammars) != 2 {
		t.Fatalf("Grammars = %d, want 2", len(doc.Grammars))
	}

	if doc.Templates.Len() != 2 {
		t.Errorf("Templates = %d, want 2", doc.Templates.Len())
	}

	if doc.Output != "recipes/weapons.json" {
		t.Errorf("Output = %q", doc.Output)
	}

	if doc.Count() != 4 {
		t.Errorf("Count() = %d, want 4", doc.Count())
	}
}

func TestDocumentRecords(t *testing.T) {
	doc := loadTestDocument(t, testDocument)

	records, err := doc.Records(false)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	// Three records: both dagger metals plus sword-copper; sword-iron is
	// skipped by pattern.
	if len(records) != 3 {
		t.Fatalf("Records() = %d records, want 3", len(records))
	}

	var decoded []map[string]any
	if err := json.Unmarshal(Render(records), &decoded); err != nil {
		t.Fatalf("rendered output is not valid JSON: %v", err)
	}

	if decoded[0]["code"] != "dagger-copper" {
		t.Errorf("records[0].code = %v", decoded[0]["code"])
	}

	last := decoded[2]
	if last["code"] != "sword-copper" {
		t.Errorf("records[2].code = %v", last["code"])
	}

	if last["attributes"].(map[string]any)["durability"] != float64(500) {
		t.Errorf("sturdy durability = %v", last["attributes"])
	}
}

func TestDocumentRecordsFailFast(t *testing.T) {
	doc := loadTestDocument(t, `{
  "template": {"default": {"name": "x"}},
  "grammars": [
    {
      "code": "item-%kind%",
      "format": "{%name%,\"tag\":\"%missing%\"}",
      "template": "default",
      "keys": [{"key": "kind", "value": ["a", "b"]}]
    }
  ]
}`)

	// Skip-and-continue drops both failing records.
	records, err := doc.Records(false)
	if err != nil {
		t.Fatalf("Records(false) error = %v", err)
	}

	if len(records) != 0 {
		t.Errorf("Records(false) = %d records, want 0", len(records))
	}

	// Fail-fast aborts on the first.
	if _, err := doc.Records(true); !errors.Is(err, grammar.ErrMissingSubstitution) {
		t.Errorf("Records(true) error = %v, want ErrMissingSubstitution", err)
	}
}

func TestLoadDocumentCompileAborts(t *testing.T) {
	var data map[string]any

	source := `{
  "template": {"default": {}},
  "grammars": [
    {"code": "x", "format": "{}", "template": "default", "keys": []},
    {"code": "y", "format": "{}", "template": "ghost", "keys": []}
  ]
}`

	if err := (Codec{}).Decode([]byte(source), &data); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if _, err := LoadDocument(data); !errors.Is(err, grammar.ErrMissingTemplateField) {
		t.Errorf("LoadDocument() error = %v, want ErrMissingTemplateField", err)
	}
}

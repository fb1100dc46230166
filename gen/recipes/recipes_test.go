package recipes

import (
	"encoding/json"
	"testing"

	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/grammar"
)

func TestDialectCompileApply(t *testing.T) {
	static := grammar.StaticTable{
		"metal": []any{"copper", "iron"},
	}

	def := map[string]any{
		"applyTo": "ingot-*",
		"code":    "ingot-%metal%",
		"format":  `{"ingredientPattern":"M","output":{"code":"ingot-%metal%"},%ingredients%}`,
		"records": []any{
			map[string]any{
				"keys": []any{
					map[string]any{"key": "metal", "value": []any{"@metal"}},
				},
				"substitute": []any{
					map[string]any{"key": "ingredients.M.code", "value": "nugget-%metal%"},
				},
			},
		},
	}

	fg, err := New(false).Compile(def, static)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	target := map[string]any{
		"ingredients": map[string]any{
			"M": map[string]any{"type": "item", "code": "placeholder"},
		},
	}

	out, err := fg.Apply(target, gen.Codec{})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}

	if len(decoded) != 2 {
		t.Fatalf("generated %d recipes, want 2", len(decoded))
	}

	second := decoded[1]
	if second["output"].(map[string]any)["code"] != "ingot-iron" {
		t.Errorf("output code = %v", second["output"])
	}

	code := second["ingredients"].(map[string]any)["M"].(map[string]any)["code"]
	if code != "nugget-iron" {
		t.Errorf("ingredient code = %v", code)
	}

	// The shared target was not mutated by the per-record substitution.
	orig := target["ingredients"].(map[string]any)["M"].(map[string]any)["code"]
	if orig != "placeholder" {
		t.Errorf("target mutated: %v", orig)
	}
}

func TestDialectRecordInheritsGrammarFields(t *testing.T) {
	def := map[string]any{
		"applyTo": "x-*",
		"code":    "x-%kind%",
		"format":  `{"code":"x-%kind%"}`,
		"skip":    []any{"x-b"},
		"records": []any{
			map[string]any{
				"keys": []any{
					map[string]any{"key": "kind", "value": []any{"a", "b"}},
				},
			},
		},
	}

	fg, err := New(false).Compile(def, grammar.StaticTable{})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	records := fg.(*Grammar).Records()
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}

	terms, err := records[0].Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	if len(terms) != 1 || terms[0].Code != "x-a" {
		t.Errorf("terms = %+v, want only x-a", terms)
	}
}

func TestDialectCompileMissingRecords(t *testing.T) {
	_, err := New(false).Compile(map[string]any{"applyTo": "x"}, grammar.StaticTable{})
	if err == nil {
		t.Fatal("Compile() accepted entry without records")
	}
}

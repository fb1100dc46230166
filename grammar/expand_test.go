package grammar

import (
	"errors"
	"testing"
)

func compileTest(t *testing.T, def map[string]any, static StaticTable) *Grammar {
	t.Helper()

	g, err := Compile(0, def, static, testTemplates(t))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	return g
}

func TestExpandProduct(t *testing.T) {
	g := compileTest(t, map[string]any{
		"keys": []any{
			map[string]any{"key": "type", "value": []any{"dagger", "sword"}},
			map[string]any{"key": "metal", "value": []any{"copper", "iron", "gold"}},
		},
		"code":     "recipe-%type%-%metal%",
		"format":   "{}",
		"template": "default",
	}, StaticTable{})

	if got := g.Count(); got != 6 {
		t.Fatalf("Count() = %d, want 6", got)
	}

	terms, err := g.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	want := []string{
		"recipe-dagger-copper",
		"recipe-dagger-iron",
		"recipe-dagger-gold",
		"recipe-sword-copper",
		"recipe-sword-iron",
		"recipe-sword-gold",
	}

	if len(terms) != len(want) {
		t.Fatalf("Terms() yielded %d, want %d", len(terms), len(want))
	}

	for i, term := range terms {
		if term.Code != want[i] {
			t.Errorf("term[%d].Code = %q, want %q", i, term.Code, want[i])
		}
	}
}

func TestExpandEmptyKeys(t *testing.T) {
	g := compileTest(t, map[string]any{
		"keys":     []any{},
		"code":     "singleton",
		"format":   "{}",
		"template": "default",
	}, StaticTable{})

	if got := g.Count(); got != 1 {
		t.Fatalf("Count() = %d, want 1", got)
	}

	terms, err := g.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	if len(terms) != 1 || terms[0].Code != "singleton" || terms[0].Table.Len() != 0 {
		t.Fatalf("terms = %+v", terms)
	}
}

func TestExpandFilters(t *testing.T) {
	g := compileTest(t, map[string]any{
		"keys": []any{
			map[string]any{"key": "metal", "value": []any{"copper", "iron", "gold", "lead"}},
		},
		"code":     "bar-%metal%",
		"allow":    []any{"bar-copper", "bar-gold", "bar-lead"},
		"skip":     []any{"*-lead"},
		"format":   "{}",
		"template": "default",
	}, StaticTable{})

	// Count is the unfiltered product size.
	if got := g.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}

	terms, err := g.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	want := []string{"bar-copper", "bar-gold"}
	if len(terms) != len(want) {
		t.Fatalf("Terms() = %d terms, want %d", len(terms), len(want))
	}

	for i, term := range terms {
		if term.Code != want[i] {
			t.Errorf("term[%d].Code = %q, want %q", i, term.Code, want[i])
		}
	}
}

func TestExpandGroupBinding(t *testing.T) {
	g := compileTest(t, map[string]any{
		"keys": []any{
			map[string]any{
				"key": "metal, tier",
				"value": []any{
					[]any{"copper", 1},
					[]any{"iron", 2},
				},
			},
		},
		"code":     "ingot-%metal%-%tier%",
		"format":   "{}",
		"template": "default",
	}, StaticTable{})

	terms, err := g.Terms()
	if err != nil {
		t.Fatalf("Terms() error = %v", err)
	}

	if terms[1].Code != "ingot-iron-2" {
		t.Errorf("term[1].Code = %q", terms[1].Code)
	}

	if v, _ := terms[0].Table.Lookup("tier"); v != 1 {
		t.Errorf("tier = %v, want 1", v)
	}
}

func TestExpandUnboundCodeToken(t *testing.T) {
	g := compileTest(t, map[string]any{
		"keys": []any{
			map[string]any{"key": "type", "value": []any{"dagger"}},
		},
		"code":     "recipe-%type%-%metal%",
		"format":   "{}",
		"template": "default",
	}, StaticTable{})

	_, err := g.Terms()
	if !errors.Is(err, ErrMissingSubstitution) {
		t.Fatalf("Terms() error = %v, want ErrMissingSubstitution", err)
	}
}

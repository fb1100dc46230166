package gen

import (
	"errors"
	"testing"

	"github.com/vsforge/gram/grammar"
)

// fakeDialect records the merged definitions it is asked to compile.
type fakeDialect struct {
	compiled []map[string]any
}

func (*fakeDialect) Name() string { return "fake" }

func (*fakeDialect) Folders() []string { return []string{"fake"} }

func (*fakeDialect) StaticFields() []string { return []string{"format"} }

func (d *fakeDialect) Compile(def map[string]any, _ grammar.StaticTable) (FileGrammar, error) {
	d.compiled = append(d.compiled, def)

	return fakeGrammar{}, nil
}

type fakeGrammar struct{}

func (fakeGrammar) Apply(map[string]any, Codec) ([]byte, error) { return []byte("{}"), nil }

func TestSetLoad(t *testing.T) {
	doc := []any{
		map[string]any{
			"static": map[string]any{"format": "{ }"},
		},
		map[string]any{
			"name":    "base",
			"applyTo": "sword-*",
			"tier":    1,
		},
		map[string]any{
			"copyFrom": "base",
			"applyTo":  []any{"dagger-*", "knife-*"},
		},
	}

	d := &fakeDialect{}
	set := NewSet()

	if err := set.Load(doc, d); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"sword-*", "dagger-*", "knife-*"}
	got := set.Patterns()

	if len(got) != len(want) {
		t.Fatalf("Patterns() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Patterns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// Inherited field survives the shallow merge, and the static default
	// fills the missing format field.
	derived := d.compiled[1]
	if derived["tier"] != 1 {
		t.Errorf("inherited tier = %v", derived["tier"])
	}

	if derived["format"] != "{ }" {
		t.Errorf("static-defaulted format = %v", derived["format"])
	}

	if _, ok := derived["copyFrom"]; ok {
		t.Error("copyFrom leaked into merged definition")
	}
}

func TestSetLoadCopyFromIndex(t *testing.T) {
	doc := []any{
		map[string]any{"applyTo": "a-*", "tier": 1},
		map[string]any{"applyTo": "b-*", "copyFrom": uint64(0)},
	}

	d := &fakeDialect{}

	if err := NewSet().Load(doc, d); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.compiled[1]["tier"] != 1 {
		t.Errorf("index copyFrom tier = %v", d.compiled[1]["tier"])
	}
}

func TestSetLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     []any
		wantErr error
	}{
		{
			name: "duplicate name",
			doc: []any{
				map[string]any{"name": "x", "applyTo": "a"},
				map[string]any{"name": "x", "applyTo": "b"},
			},
			wantErr: ErrDuplicateGrammar,
		},
		{
			name: "unknown base",
			doc: []any{
				map[string]any{"applyTo": "a", "copyFrom": "ghost"},
			},
			wantErr: grammar.ErrUnknownBaseTemplate,
		},
		{
			name: "cycle",
			doc: []any{
				map[string]any{"name": "a", "applyTo": "a", "copyFrom": "b"},
				map[string]any{"name": "b", "applyTo": "b", "copyFrom": "a"},
			},
			wantErr: grammar.ErrCircularInheritance,
		},
		{
			name: "missing applyTo",
			doc: []any{
				map[string]any{"tier": 1},
			},
			wantErr: ErrMissingApplyTo,
		},
		{
			name:    "entry not a mapping",
			doc:     []any{"oops"},
			wantErr: ErrMalformedDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSet().Load(tt.doc, &fakeDialect{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

package grammar

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Table is an ordered set of key bindings accumulated while walking one
// product term. Iteration order is binding order, which is the grammar's
// declared key-group order; substitution depends on it.
type Table struct {
	names []string
	binds map[string]any
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{binds: map[string]any{}}
}

// Clone returns an independent copy of the table. Values are shared, which
// is safe because bound values are scalars.
func (t *Table) Clone() *Table {
	return &Table{
		names: slices.Clone(t.names),
		binds: maps.Clone(t.binds),
	}
}

// Bind associates name with value, appending name to the iteration order on
// first use. Rebinding an existing name keeps its original position.
func (t *Table) Bind(name string, value any) {
	if _, ok := t.binds[name]; !ok {
		t.names = append(t.names, name)
	}

	t.binds[name] = value
}

// Lookup returns the value bound to name.
func (t *Table) Lookup(name string) (any, bool) {
	v, ok := t.binds[name]

	return v, ok
}

// Has reports whether name is bound.
func (t *Table) Has(name string) bool {
	_, ok := t.binds[name]

	return ok
}

// Len returns the number of bindings.
func (t *Table) Len() int { return len(t.names) }

// Names returns the bound names in binding order.
func (t *Table) Names() []string { return slices.Clone(t.names) }

// All iterates bindings in binding order.
func (t *Table) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, name := range t.names {
			if !yield(name, t.binds[name]) {
				return
			}
		}
	}
}

// Env returns the bindings as a plain map for expression evaluation.
func (t *Table) Env() map[string]any {
	return maps.Clone(t.binds)
}

// String renders the table as "{a:1, b:x}" in binding order.
func (t *Table) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	for i, name := range t.names {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%s:%v", name, t.binds[name])
	}

	sb.WriteByte('}')

	return sb.String()
}

// LogValue implements slog.LogValuer so tables log as groups.
func (t *Table) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(t.names))
	for _, name := range t.names {
		attrs = append(attrs, slog.Any(name, t.binds[name]))
	}

	return slog.GroupValue(attrs...)
}

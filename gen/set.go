package gen

import (
	"log/slog"
	"slices"

	"github.com/vsforge/gram/grammar"
	"github.com/vsforge/gram/log"
)

// Dialect adapts one asset domain to the batch engine: which folders it
// processes, which grammar fields default from the document's static entry,
// and how a merged grammar entry compiles.
type Dialect interface {
	Name() string
	Folders() []string
	StaticFields() []string
	Compile(def map[string]any, static grammar.StaticTable) (FileGrammar, error)
}

// FileGrammar transforms one matched target document into its output bytes.
type FileGrammar interface {
	Apply(target map[string]any, codec Codec) ([]byte, error)
}

// Set holds the compiled grammars of one input directory, keyed by their
// applyTo patterns in document order.
type Set struct {
	patterns []string
	grammars map[string]FileGrammar
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{grammars: map[string]FileGrammar{}}
}

// Len returns the number of registered patterns.
func (s *Set) Len() int { return len(s.patterns) }

// Patterns returns the applyTo patterns in document order.
func (s *Set) Patterns() []string { return slices.Clone(s.patterns) }

// Grammar returns the FileGrammar registered for pattern.
func (s *Set) Grammar(pattern string) FileGrammar { return s.grammars[pattern] }

// Load parses one grammar document into the set. A document is a list of
// entries: at most one {"static": {...}} table plus grammar definitions.
// Definitions may carry a name and inherit another definition by name or
// index with copyFrom; inheritance is a shallow top-level merge resolved in
// dependency order. Fields the dialect declares as static-defaulted are
// filled from the static table when a definition omits them. Grammars from
// repeated Load calls accumulate; a later pattern replaces an earlier one.
func (s *Set) Load(doc []any, d Dialect) error {
	defs := make([]map[string]any, 0, len(doc))
	static := grammar.StaticTable{}
	staticSeen := false
	byName := map[string]int{}

	for _, item := range doc {
		m, ok := item.(map[string]any)
		if !ok {
			return ErrMalformedDocument.With(slog.Any("entry", item))
		}

		if raw, ok := m["static"]; ok {
			table, ok := raw.(map[string]any)
			if !ok {
				return grammar.ErrInvalidFieldType.With(
					slog.String("field", "static"),
					slog.String("want", "mapping"),
				)
			}

			if staticSeen {
				log.Warn("multiple static entries, keeping the first")

				continue
			}

			static = grammar.StaticTable(table)
			staticSeen = true

			continue
		}

		index := len(defs)
		defs = append(defs, m)

		if name, ok := m["name"].(string); ok {
			if _, dup := byName[name]; dup {
				return ErrDuplicateGrammar.With(slog.String("name", name))
			}

			byName[name] = index
		}
	}

	resolved, err := resolveDefs(defs, byName)
	if err != nil {
		return err
	}

	for i, def := range resolved {
		for _, field := range d.StaticFields() {
			if _, ok := def[field]; ok {
				continue
			}

			if value, ok := static[field]; ok {
				def[field] = value
			}
		}

		patterns, perr := applyTo(def)
		if perr != nil {
			return perr.With(slog.Int("grammar", i))
		}

		fg, err := d.Compile(def, static)
		if err != nil {
			return grammar.WrapError(err).With(slog.Int("grammar", i))
		}

		for _, pattern := range patterns {
			if _, ok := s.grammars[pattern]; !ok {
				s.patterns = append(s.patterns, pattern)
			}

			s.grammars[pattern] = fg
		}
	}

	return nil
}

// resolveDefs merges copyFrom inheritance across definitions, visiting
// bases before dependents.
func resolveDefs(defs []map[string]any, byName map[string]int) ([]map[string]any, error) {
	resolved := make([]map[string]any, len(defs))

	var visit func(i int, chain []int) error

	visit = func(i int, chain []int) error {
		if resolved[i] != nil {
			return nil
		}

		if slices.Contains(chain, i) {
			return grammar.ErrCircularInheritance.With(slog.Int("grammar", i))
		}

		def := defs[i]

		merged := map[string]any{}

		if ref, ok := def["copyFrom"]; ok {
			base, err := defIndex(ref, byName, len(defs))
			if err != nil {
				return err.With(slog.Int("grammar", i))
			}

			if err := visit(base, append(chain, i)); err != nil {
				return err
			}

			for key, value := range resolved[base] {
				merged[key] = value
			}
		}

		for key, value := range def {
			if key == "copyFrom" || key == "name" {
				continue
			}

			merged[key] = value
		}

		resolved[i] = merged

		return nil
	}

	for i := range defs {
		if err := visit(i, nil); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// defIndex resolves a copyFrom reference, given by name or position.
func defIndex(ref any, byName map[string]int, limit int) (int, *grammar.Error) {
	switch v := ref.(type) {
	case string:
		if i, ok := byName[v]; ok {
			return i, nil
		}

		return 0, grammar.ErrUnknownBaseTemplate.With(slog.String("copyFrom", v))
	case int:
		if v >= 0 && v < limit {
			return v, nil
		}
	case int64:
		if v >= 0 && v < int64(limit) {
			return int(v), nil
		}
	case uint64:
		if v < uint64(limit) {
			return int(v), nil
		}
	case float64:
		if v >= 0 && int(v) < limit && v == float64(int(v)) {
			return int(v), nil
		}
	}

	return 0, grammar.ErrUnknownBaseTemplate.With(slog.Any("copyFrom", ref))
}

// applyTo normalizes the required applyTo field to a pattern list.
func applyTo(def map[string]any) ([]string, *grammar.Error) {
	raw, ok := def["applyTo"]
	if !ok {
		return nil, ErrMissingApplyTo
	}

	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))

		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, grammar.ErrInvalidFieldType.With(
					slog.String("field", "applyTo"),
					slog.Any("value", item),
				)
			}

			out = append(out, s)
		}

		return out, nil
	default:
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "applyTo"),
			slog.Any("value", raw),
		)
	}
}

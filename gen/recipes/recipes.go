// Package recipes is the batch dialect for recipe files: each matched
// target document serves as the record template, and every grammar record
// expands against it into a generated recipe list.
package recipes

import (
	"log/slog"
	"maps"

	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/grammar"
	"github.com/vsforge/gram/log"
)

// Record fields that default from their grammar-level counterparts.
var inherited = []string{"code", "format", "allow", "skip"}

// Dialect implements gen.Dialect for recipe directories.
type Dialect struct {
	failFast bool
}

// New returns the recipes dialect. With failFast set, the first per-record
// assembly failure aborts the target instead of dropping the record.
func New(failFast bool) Dialect {
	return Dialect{failFast: failFast}
}

func (Dialect) Name() string { return "recipes" }

func (Dialect) Folders() []string { return []string{"recipes"} }

func (Dialect) StaticFields() []string { return []string{"code", "format", "allow", "skip"} }

// Compile builds one file grammar from a merged batch entry. Each entry in
// records compiles as a production rule; record fields missing from an
// entry inherit the grammar-level value.
func (d Dialect) Compile(def map[string]any, static grammar.StaticTable) (gen.FileGrammar, error) {
	raw, ok := def["records"]
	if !ok {
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "records"),
			slog.String("want", "list"),
		)
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "records"),
			slog.String("want", "list"),
		)
	}

	fg := &Grammar{failFast: d.failFast}

	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, gen.ErrMalformedDocument.With(slog.Int("record", i))
		}

		merged := maps.Clone(m)

		for _, field := range inherited {
			if _, ok := merged[field]; ok {
				continue
			}

			if value, ok := def[field]; ok {
				merged[field] = value
			}
		}

		g, err := grammar.CompileRecord(i, merged, static)
		if err != nil {
			return nil, err
		}

		fg.records = append(fg.records, g)
	}

	return fg, nil
}

// Grammar applies compiled recipe records to one target document.
type Grammar struct {
	records  []*grammar.Grammar
	failFast bool
}

// Records exposes the compiled production rules.
func (rg *Grammar) Records() []*grammar.Grammar { return rg.records }

// Apply expands every record against target and renders the generated
// recipes as one output list. The target document is never mutated; each
// record works on its own copy when it carries mutations.
func (rg *Grammar) Apply(target map[string]any, _ gen.Codec) ([]byte, error) {
	var out []string

	for _, g := range rg.records {
		warned := false

		for term, err := range g.Expand() {
			if err != nil {
				if rg.failFast {
					return nil, err
				}

				log.Error("term rejected", slog.Any("error", err))

				continue
			}

			log.Verbose("generating recipe",
				slog.String("code", term.Code),
				slog.Any("table", term.Table),
			)

			record, unused, err := g.Assemble(target, term)
			if err != nil {
				if rg.failFast {
					return nil, err
				}

				log.Error("record failed", slog.Any("error", err))

				continue
			}

			if len(unused) > 0 && !warned {
				warned = true

				log.Warn("target has fields unused by format",
					slog.Any("fields", unused),
				)
			}

			out = append(out, record)
		}
	}

	log.Verbose("generated recipes", slog.Int("count", len(out)))

	return gen.Render(out), nil
}

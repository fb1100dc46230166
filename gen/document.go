package gen

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsforge/gram/grammar"
	"github.com/vsforge/gram/log"
)

// Document is the single-file expansion mode: one input document carrying
// its own static table, template registry, grammar list, and output path.
type Document struct {
	Static    grammar.StaticTable
	Templates *grammar.Registry
	Grammars  []*grammar.Grammar
	Output    string
}

// LoadDocument compiles a decoded expansion document. Compilation is
// all-or-nothing: every template must resolve and every grammar must
// compile before any record can be produced.
func LoadDocument(data map[string]any) (*Document, error) {
	doc := &Document{
		Static:    grammar.StaticTable{},
		Templates: grammar.NewRegistry(),
	}

	if raw, ok := data["static"]; ok {
		table, ok := raw.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "static"),
				slog.String("want", "mapping"),
			)
		}

		doc.Static = grammar.StaticTable(table)
	}

	templates, ok := data["template"]
	if !ok {
		templates = data["templates"]
	}

	if templates != nil {
		section, ok := templates.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.String("field", "template"),
				slog.String("want", "mapping"),
			)
		}

		for name, raw := range section {
			def, ok := raw.(map[string]any)
			if !ok {
				return nil, grammar.ErrInvalidFieldType.With(
					slog.String("template", name),
					slog.String("want", "mapping"),
				)
			}

			doc.Templates.Register(name, def)
		}

		if err := doc.Templates.ResolveAll(); err != nil {
			return nil, err
		}
	}

	rawGrammars, ok := data["grammars"]
	if !ok {
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "grammars"),
			slog.String("want", "list"),
		)
	}

	list, ok := rawGrammars.([]any)
	if !ok {
		return nil, grammar.ErrInvalidFieldType.With(
			slog.String("field", "grammars"),
			slog.String("want", "list"),
		)
	}

	for i, raw := range list {
		def, ok := raw.(map[string]any)
		if !ok {
			return nil, grammar.ErrInvalidFieldType.With(
				slog.Int("grammar", i),
				slog.String("want", "mapping"),
			)
		}

		g, err := grammar.Compile(i, def, doc.Static, doc.Templates)
		if err != nil {
			return nil, err
		}

		doc.Grammars = append(doc.Grammars, g)
	}

	if output, ok := data["output"].(string); ok {
		doc.Output = output
	}

	return doc, nil
}

// Count returns the total number of product terms across all grammars
// before pattern filtering.
func (d *Document) Count() int {
	count := 0
	for _, g := range d.Grammars {
		count += g.Count()
	}

	return count
}

// Records assembles every admitted record across all grammars. Assembly
// errors are per record: the failing record is dropped and assembly
// continues, unless failFast is set, in which case the first error aborts.
// The template's unused fields are warned once per grammar.
func (d *Document) Records(failFast bool) ([]string, error) {
	var records []string

	for _, g := range d.Grammars {
		tmpl, err := d.Templates.Resolve(g.Template)
		if err != nil {
			return records, grammar.WrapError(err).With(slog.Int("grammar", g.Index))
		}

		warned := false

		for term, err := range g.Expand() {
			if err != nil {
				if failFast {
					return records, err
				}

				log.Error("term rejected", slog.Any("error", err))

				continue
			}

			log.Verbose("expanding",
				slog.String("code", term.Code),
				slog.Any("table", term.Table),
			)

			record, unused, err := g.Assemble(tmpl, term)
			if err != nil {
				if failFast {
					return records, err
				}

				log.Error("record failed", slog.Any("error", err))

				continue
			}

			if len(unused) > 0 && !warned {
				warned = true

				log.Warn("template has unused fields",
					slog.String("template", g.Template),
					slog.String("fields", joinNames(unused)),
				)
			}

			records = append(records, record)
		}
	}

	return records, nil
}

// Render joins assembled records into the final output document.
func Render(records []string) []byte {
	return []byte("[\n" + strings.Join(records, ",\n") + "\n]")
}

// WriteRecords writes the rendered document to path, creating parent
// directories as needed.
func WriteRecords(path string, records []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return permission(err, path)
		}
	}

	if err := os.WriteFile(path, Render(records), 0o644); err != nil {
		return permission(err, path)
	}

	return nil
}

func permission(err error, path string) error {
	if errors.Is(err, os.ErrPermission) {
		return ErrPermissionDenied.Wrap(err).With(slog.String("path", path))
	}

	return err
}

package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/vsforge/gram/cli/cmd/browse"
	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/grammar"
	"github.com/vsforge/gram/log"
)

// Browse expands a grammar document and opens an interactive browser over
// the assembled records.
type Browse struct {
	Source string `arg:"" help:"Grammar document to browse" name:"source" type:"existingfile"`

	Strict bool `help:"Decode documents with the strict JSON codec" short:"s"`
}

// Run executes the browse command.
func (b *Browse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	doc, err := loadDocument(b.Source, b.Strict)
	if err != nil {
		return err
	}

	entries, err := b.entries(doc)
	if err != nil {
		return err
	}

	return browse.Run(ctx, filepath.Base(b.Source), entries)
}

// entries assembles one browsable entry per admitted record. Records that
// fail assembly are logged and dropped so the rest remain browsable.
func (b *Browse) entries(doc *gen.Document) ([]browse.Entry, error) {
	var entries []browse.Entry

	for _, g := range doc.Grammars {
		tmpl, err := doc.Templates.Resolve(g.Template)
		if err != nil {
			return nil, grammar.WrapError(err).With(slog.Int("grammar", g.Index))
		}

		for term, err := range g.Expand() {
			if err != nil {
				log.Error("term rejected", slog.Any("error", err))

				continue
			}

			record, _, err := g.Assemble(tmpl, term)
			if err != nil {
				log.Error("record failed", slog.Any("error", err))

				continue
			}

			entries = append(entries, browse.Entry{
				Code:   term.Code,
				Record: record,
			})
		}
	}

	return entries, nil
}

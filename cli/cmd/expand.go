package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/gen/recipes"
	"github.com/vsforge/gram/gen/shapes"
	"github.com/vsforge/gram/log"
)

// Expand expands grammar documents into record lists, or batch-processes a
// source tree when one or more generator dialects are named with --generate.
type Expand struct {
	Source string `arg:""             help:"Grammar document, or source directory in batch mode" name:"source" type:"path"`
	Output string `arg:"" optional:"" help:"Output file or directory"                             name:"output" type:"path"`

	Generate []string `help:"Batch-process the source tree with the named dialects" short:"g"`
	DryRun   bool     `help:"Report what would be produced without writing output"  short:"d"`
	Strict   bool     `help:"Decode documents with the strict JSON codec"           short:"s"`
	FailFast bool     `help:"Abort at the first record error"`
	Absolute bool     `help:"Permit absolute paths in batch mode"                   short:"a"`
	Exclude  []string `help:"Directory names skipped while scanning in batch mode"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if len(e.Generate) > 0 {
		return e.batch(ctx)
	}

	return e.document(ctx)
}

// options assembles engine options from the command flags.
func (e *Expand) options() gen.Options {
	return gen.Options{
		DryRun:   e.DryRun,
		Strict:   e.Strict,
		Absolute: e.Absolute,
		FailFast: e.FailFast,
		Exclude:  e.Exclude,
	}
}

// dialect maps a --generate name to its dialect implementation.
func (e *Expand) dialect(name string) (gen.Dialect, error) {
	switch name {
	case recipes.Dialect{}.Name():
		return recipes.New(e.FailFast), nil

	case shapes.Dialect{}.Name():
		return shapes.New(), nil
	}

	return nil, ErrUnknownDialect.With(slog.String("dialect", name))
}

// batch runs each named dialect over the source tree, mirroring results
// under the output directory.
func (e *Expand) batch(ctx context.Context) error {
	if e.Output == "" {
		return ErrMissingOutput.With(slog.String("source", e.Source))
	}

	for _, name := range e.Generate {
		d, err := e.dialect(name)
		if err != nil {
			return err
		}

		log.InfoContext(ctx, "generating",
			slog.String("dialect", name),
			slog.String("source", e.Source),
			slog.String("output", e.Output),
		)

		err = gen.New(d, e.options()).Batch(e.Source, e.Output)
		if err != nil {
			return err
		}
	}

	return nil
}

// document expands a single grammar document.
func (e *Expand) document(ctx context.Context) error {
	doc, err := loadDocument(e.Source, e.Strict)
	if err != nil {
		return err
	}

	if e.DryRun {
		return dryRun(ctx, e.Source, doc)
	}

	records, err := doc.Records(e.FailFast)
	if err != nil {
		return err
	}

	output := e.Output
	if output == "" {
		output = doc.Output
	}

	if output == "" {
		fmt.Println(string(gen.Render(records)))

		return nil
	}

	err = gen.WriteRecords(output, records)
	if err != nil {
		return ErrWriteOutput.With(slog.String("path", output)).Wrap(err)
	}

	log.InfoContext(ctx, "wrote records",
		slog.String("path", output),
		slog.Int("records", len(records)),
	)

	return nil
}

// dryRun reports the full ordered term sequence without assembling records
// or touching the filesystem.
func dryRun(ctx context.Context, source string, doc *gen.Document) error {
	admitted := 0

	for _, g := range doc.Grammars {
		for term, err := range g.Expand() {
			if err != nil {
				log.ErrorContext(ctx, "term rejected", slog.Any("error", err))

				continue
			}

			admitted++

			log.InfoContext(ctx, "would assemble",
				slog.Int("grammar", g.Index),
				slog.String("code", term.Code),
				slog.Any("table", term.Table),
			)
		}
	}

	log.InfoContext(ctx, "dry run",
		slog.String("source", source),
		slog.Int("records", admitted),
	)

	return nil
}

// loadDocument reads, decodes, and compiles a grammar document.
func loadDocument(path string, strict bool) (*gen.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("path", path)).Wrap(err)
	}

	var raw map[string]any

	codec := gen.Codec{Strict: strict}

	err = codec.Decode(data, &raw)
	if err != nil {
		return nil, ErrReadSource.With(slog.String("path", path)).Wrap(err)
	}

	return gen.LoadDocument(raw)
}

package cmd

import (
	"context"
	"log/slog"

	"github.com/vsforge/gram/log"
)

// Check compiles grammar documents without assembling or writing records.
type Check struct {
	Sources []string `arg:"" help:"Grammar documents to validate" name:"sources" type:"existingfile"`

	Strict bool `help:"Decode documents with the strict JSON codec" short:"s"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	for _, src := range c.Sources {
		doc, err := loadDocument(src, c.Strict)
		if err != nil {
			return err
		}

		log.InfoContext(ctx, "document ok",
			slog.String("path", src),
			slog.Int("grammars", len(doc.Grammars)),
			slog.Int("templates", doc.Templates.Len()),
			slog.Int("records", doc.Count()),
		)
	}

	return nil
}

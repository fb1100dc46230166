package gen

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/vsforge/gram/grammar"
	"github.com/vsforge/gram/log"
)

// grammarPrefix marks the files inside an input directory that hold grammar
// definitions rather than targets.
const grammarPrefix = "grammar"

// Options control how an Engine processes its inputs.
type Options struct {
	DryRun   bool
	Strict   bool
	Absolute bool
	FailFast bool
	Exclude  []string
}

// Engine drives one dialect over input directories: it partitions each
// directory into grammar files and targets, compiles the grammars, applies
// them to every matching target, and copies unmatched targets through
// unchanged.
type Engine struct {
	dialect Dialect
	codec   Codec
	opts    Options
}

// New returns an Engine for the given dialect.
func New(d Dialect, opts Options) *Engine {
	return &Engine{
		dialect: d,
		codec:   Codec{Strict: opts.Strict},
		opts:    opts,
	}
}

// Batch locates the dialect's folders under input and runs each against the
// mirrored path under output. Without the absolute option, absolute input
// or output paths are rejected to guard against writing outside the
// working tree.
func (e *Engine) Batch(input, output string) error {
	if !e.opts.Absolute {
		for _, path := range []string{input, output} {
			if filepath.IsAbs(path) || strings.HasPrefix(path, `\`) {
				return ErrAbsolutePath.With(slog.String("path", path))
			}
		}
	}

	folders, err := Directories(input, e.dialect.Folders(), e.opts.Exclude)
	if err != nil {
		return err
	}

	if len(folders) == 0 {
		log.Error("no input found, skipping",
			slog.String("want", e.dialect.Name()),
			slog.String("input", input),
		)

		return nil
	}

	for _, folder := range folders {
		err := e.Run(filepath.Join(input, folder), filepath.Join(output, folder))
		if err != nil {
			if e.opts.FailFast {
				return err
			}

			log.Error("directory failed", slog.String("input", folder), slog.Any("error", err))
		}
	}

	return nil
}

// Run processes one input directory into one output directory.
func (e *Engine) Run(input, output string) error {
	in, _ := filepath.Abs(input)
	out, _ := filepath.Abs(output)

	if in == out {
		return ErrSamePath.With(slog.String("path", input))
	}

	files, err := Files(input)
	if err != nil {
		return err
	}

	var grammars, targets []string

	for _, name := range files {
		if strings.HasPrefix(name, grammarPrefix) {
			grammars = append(grammars, name)
		} else {
			targets = append(targets, name)
		}
	}

	if len(targets) == 0 {
		return nil
	}

	if len(grammars) == 0 {
		log.Warn("no grammar file found, copying targets unchanged",
			slog.String("input", input),
		)
		e.copySkipped(targets, input, output)

		return nil
	}

	set := NewSet()

	for _, name := range grammars {
		if err := e.loadGrammar(set, filepath.Join(input, name)); err != nil {
			if e.opts.FailFast {
				return err
			}

			log.Error("grammar file rejected",
				slog.String("file", name),
				slog.Any("error", err),
			)
		}
	}

	matched := map[string]struct{}{}

	for _, pattern := range set.Patterns() {
		fg := set.Grammar(pattern)

		for _, name := range targets {
			if ok, err := filepath.Match(pattern, name); err != nil || !ok {
				continue
			}

			matched[name] = struct{}{}

			if err := e.applyTarget(fg, pattern, input, output, name); err != nil {
				if e.opts.FailFast {
					return err
				}

				log.Error("target failed",
					slog.String("file", name),
					slog.Any("error", err),
				)
			}
		}
	}

	log.Info("processed directory",
		slog.String("input", input),
		slog.Int("matched", len(matched)),
	)

	var skipped []string

	for _, name := range targets {
		if _, ok := matched[name]; !ok {
			skipped = append(skipped, name)
		}
	}

	if len(skipped) > 0 {
		e.copySkipped(skipped, input, output)
		log.Warn("skipped files", slog.String("files", joinNames(skipped)))
	}

	return nil
}

func (e *Engine) loadGrammar(set *Set, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc []any
	if err := e.codec.Decode(data, &doc); err != nil {
		return err
	}

	return set.Load(doc, e.dialect)
}

func (e *Engine) applyTarget(fg FileGrammar, pattern, input, output, name string) error {
	data, err := os.ReadFile(filepath.Join(input, name))
	if err != nil {
		return err
	}

	var target map[string]any
	if err := e.codec.Decode(data, &target); err != nil {
		return grammar.WrapError(err).With(slog.String("file", name))
	}

	final, err := fg.Apply(target, e.codec)
	if err != nil {
		return err
	}

	if e.opts.DryRun {
		return nil
	}

	path := filepath.Join(output, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(path, final, 0o644); err != nil {
		return err
	}

	log.Verbose("applied grammar",
		slog.String("pattern", pattern),
		slog.String("output", path),
	)

	return nil
}

// copySkipped mirrors unmatched targets into the output directory so a
// processed tree stays complete.
func (e *Engine) copySkipped(names []string, input, output string) {
	if e.opts.DryRun {
		return
	}

	for _, name := range names {
		src := filepath.Join(input, name)
		dst := filepath.Join(output, name)

		if err := copyFile(src, dst); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				log.Error("file not found", slog.String("path", src))
			} else {
				log.Error("copy failed", slog.String("file", name), slog.Any("error", err))
			}

			continue
		}

		log.Verbose("copied file", slog.String("from", src), slog.String("to", dst))
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o644)
}

// joinNames renders a file list for a single log attribute.
func joinNames(names []string) string {
	return mung.Make(
		mung.WithSubjectItems(names...),
		mung.WithDelim(", "),
	).String()
}

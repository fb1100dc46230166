package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/vsforge/gram/gen"
	"github.com/vsforge/gram/log"
	"github.com/vsforge/gram/profile"
)

// Init generates a default settings file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing settings file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	path, ok := ktx.Model.Vars()[SettingsIdentifier]
	if !ok {
		panic("internal error: settings path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteSettings.
			With(slog.String("file", path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := gen.Codec{Strict: true}.Encode(i.settings(ctx))
	if err != nil {
		return ErrWriteSettings.
			With(slog.String("file", path)).
			Wrap(err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return ErrWriteSettings.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized settings file",
		slog.String("path", path),
	)

	return nil
}

// settings collects current flag values into a settings document.
func (i *Init) settings(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)

	doc := make(map[string]any)

	prefixIgnore := []string{"help", "force", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		switch v := val.(type) {
		case bool, string, int, int64, uint64, float64, []string:
			if s, ok := v.(string); ok && s == "" {
				continue
			}

			if list, ok := v.([]string); ok && len(list) == 0 {
				continue
			}

			doc[flag.Name] = v

		default:
			doc[flag.Name] = fmt.Sprint(v)
		}
	}

	return doc
}

package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/vsforge/gram/gen"
)

// resolve is a [kong.ConfigurationLoader] that parses settings files using
// the relaxed codec, so comments and unquoted keys are accepted.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/settings.json")
//
// Flag names with hyphens (e.g., "log-level") may use underscores in the
// settings file (e.g., "log_level"). Command-line flags override settings
// file values.
//
// Example settings file:
//
//	{
//	  "log-level": "debug",
//	  "log-format": "json",
//	  "strict": true
//	}
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return settings{}, nil
	}

	var (
		codec gen.Codec
		doc   map[string]any
	)

	err = codec.Decode(data, &doc)
	if err != nil {
		// Parse error - return empty settings
		return settings{}, nil
	}

	cfg := make(settings, len(doc))

	for key, value := range doc {
		// Kong requires numbers as strings for parsing
		if num, ok := value.(int64); ok {
			cfg[key] = strconv.FormatInt(num, 10)
		} else if num, ok := value.(uint64); ok {
			cfg[key] = strconv.FormatUint(num, 10)
		} else if num, ok := value.(float64); ok {
			cfg[key] = strconv.FormatFloat(num, 'f', -1, 64)
		} else {
			cfg[key] = value
		}
	}

	return cfg, nil
}

// settings implements [kong.Resolver] for settings file configs.
type settings map[string]any

// Validate implements [kong.Resolver].
func (s settings) Validate(*kong.Application) error {
	// No validation needed - the settings were already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (s settings) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but settings keys may use
	// underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	// Look up the value in our settings
	if value, ok := s[name]; ok {
		return value, nil
	}

	// Try underscore variant
	if value, ok := s[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

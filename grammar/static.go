package grammar

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// refPrefix marks a string value as a reference into the static table.
const refPrefix = "@"

// StaticTable holds named values shared by every grammar in a document.
// Entries are scalars or lists; references splice lists in place.
type StaticTable map[string]any

// IsRef reports whether value is a static reference string.
func IsRef(value any) (string, bool) {
	s, ok := value.(string)
	if !ok || !strings.HasPrefix(s, refPrefix) {
		return "", false
	}

	return strings.TrimPrefix(s, refPrefix), true
}

// Resolve replaces static references in values with the referenced entries,
// splicing list-valued entries so the result stays flat. Non-reference
// values pass through unchanged. A reference to a missing entry is an
// ErrUnresolvedStatic unless ignoreMissing is set, in which case it is
// dropped from the output.
func (s StaticTable) Resolve(values []any, ignoreMissing bool) ([]any, error) {
	out := make([]any, 0, len(values))

	for _, value := range values {
		name, ok := IsRef(value)
		if !ok {
			out = append(out, value)

			continue
		}

		entry, ok := s[name]
		if !ok {
			if ignoreMissing {
				continue
			}

			return nil, s.missing(name)
		}

		if list, ok := entry.([]any); ok {
			out = append(out, list...)
		} else {
			out = append(out, entry)
		}
	}

	return out, nil
}

// ResolveString resolves a single possibly-referencing value that must end
// up as exactly one string. With ignoreMissing set, a dangling reference
// yields ok=false instead of an error.
func (s StaticTable) ResolveString(value any, ignoreMissing bool) (string, bool, error) {
	out, err := s.Resolve([]any{value}, ignoreMissing)
	if err != nil {
		return "", false, err
	}

	if len(out) == 0 {
		return "", false, nil
	}

	if len(out) != 1 {
		return "", false, ErrInvalidFieldType.With(
			slog.Any("value", value),
			slog.Int("resolved", len(out)),
			slog.String("want", "a single string"),
		)
	}

	str, ok := out[0].(string)
	if !ok {
		return "", false, ErrInvalidFieldType.With(
			slog.Any("value", out[0]),
			slog.String("want", "string"),
		)
	}

	return str, true, nil
}

// missing builds the unresolved-reference error, with a fuzzy-matched
// suggestion when one of the defined names is close.
func (s StaticTable) missing(name string) *Error {
	err := ErrUnresolvedStatic.With(slog.String("name", refPrefix+name))

	names := slices.Sorted(maps.Keys(s))
	if match := fuzzy.Find(name, names); len(match) > 0 {
		err = err.With(slog.String("suggest", refPrefix+match[0].Str))
	}

	return err
}

package grammar

import (
	"log/slog"
	"strings"
)

// pathSep separates segments of a dotted field path.
const pathSep = "."

// DeepSet assigns value at the dotted path inside data, creating nested
// mappings for any missing or non-mapping intermediate segment.
func DeepSet(data map[string]any, path string, value any) {
	segments := strings.Split(path, pathSep)

	for _, segment := range segments[:len(segments)-1] {
		next, ok := data[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			data[segment] = next
		}

		data = next
	}

	data[segments[len(segments)-1]] = value
}

// DeepRemove deletes the field at the dotted path inside data. A missing
// segment is an ErrPathNotFound; an intermediate segment that is not a
// mapping is an ErrNotAMapping.
func DeepRemove(data map[string]any, path string) error {
	segments := strings.Split(path, pathSep)

	for i, segment := range segments[:len(segments)-1] {
		child, ok := data[segment]
		if !ok {
			return ErrPathNotFound.With(
				slog.String("path", path),
				slog.String("segment", strings.Join(segments[:i+1], pathSep)),
			)
		}

		next, ok := child.(map[string]any)
		if !ok {
			return ErrNotAMapping.With(
				slog.String("path", path),
				slog.String("segment", strings.Join(segments[:i+1], pathSep)),
			)
		}

		data = next
	}

	last := segments[len(segments)-1]
	if _, ok := data[last]; !ok {
		return ErrPathNotFound.With(
			slog.String("path", path),
			slog.String("segment", path),
		)
	}

	delete(data, last)

	return nil
}

// DeepCopy returns an independent copy of value, recursing through mappings
// and lists. Scalars are returned as-is.
func DeepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = DeepCopy(val)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = DeepCopy(val)
		}

		return out
	default:
		return value
	}
}

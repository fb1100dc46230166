package grammar

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// tokenDelim wraps placeholder names in templates: %name%.
const tokenDelim = "%"

// Substitute replaces every %name% token in text with the value bound to
// name in table. Numeric values also strip surrounding double quotes from
// the token, so a quoted placeholder becomes a bare JSON number. If any
// token has no binding the text is rejected with ErrMissingSubstitution
// naming all unbound tokens.
func Substitute(text string, table *Table) (string, error) {
	if missing := MissingTokens(text, table); len(missing) > 0 {
		return "", ErrMissingSubstitution.With(
			slog.String("tokens", strings.Join(missing, ", ")),
		)
	}

	for name, value := range table.All() {
		token := tokenDelim + name + tokenDelim

		if num, ok := numeric(value); ok {
			text = strings.ReplaceAll(text, `"`+token+`"`, num)
			text = strings.ReplaceAll(text, token, num)

			continue
		}

		text = strings.ReplaceAll(text, token, stringify(value))
	}

	return text, nil
}

// MissingTokens returns the %name% token names in text that have no binding
// in table, in order of first appearance. Tokens are the odd-indexed
// segments between balanced delimiter pairs; an unbalanced trailing
// delimiter is ignored.
func MissingTokens(text string, table *Table) []string {
	parts := strings.Split(text, tokenDelim)

	var missing []string

	seen := map[string]struct{}{}

	for i := 1; i < len(parts)-1; i += 2 {
		name := parts[i]
		if table.Has(name) {
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		missing = append(missing, name)
	}

	return missing
}

// numeric renders integer and floating-point values in their shortest exact
// decimal form, so float64(2) substitutes as "2".
func numeric(value any) (string, bool) {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

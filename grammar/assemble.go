package grammar

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Assemble builds the final record text for one admitted term. The template
// is copied before any remove or substitute mutation touches it, then each
// top-level field is spliced into the format as `"name":<json>` at its
// %name% token. Fields without a token are reported in unused; they carry
// a warning, not an error. Placeholder substitution runs last over the
// spliced text.
func (g *Grammar) Assemble(tmpl map[string]any, term Term) (record string, unused []string, err error) {
	if len(g.Remove)+len(g.Substitute) > 0 {
		tmpl = DeepCopy(tmpl).(map[string]any)
	}

	for _, path := range g.Remove {
		if err := DeepRemove(tmpl, path); err != nil {
			return "", nil, WrapError(err).With(slog.String("code", term.Code))
		}
	}

	for i := range g.Substitute {
		mut := &g.Substitute[i]

		value, err := mut.Eval(term.Table, g.static)
		if err != nil {
			return "", nil, WrapError(err).With(slog.String("code", term.Code))
		}

		DeepSet(tmpl, mut.Path, value)
	}

	out := g.Format

	for _, field := range slices.Sorted(maps.Keys(tmpl)) {
		token := tokenDelim + field + tokenDelim
		if !strings.Contains(out, token) {
			unused = append(unused, field)

			continue
		}

		encoded, err := compactJSON(tmpl[field])
		if err != nil {
			return "", unused, WrapError(err).With(
				slog.String("code", term.Code),
				slog.String("field", field),
			)
		}

		out = strings.ReplaceAll(out, token, `"`+field+`":`+encoded)
	}

	record, serr := Substitute(out, term.Table)
	if serr != nil {
		return "", unused, WrapError(serr).With(slog.String("code", term.Code))
	}

	return record, unused, nil
}

// compactJSON marshals value without HTML escaping, so record content like
// "<gold>" survives verbatim.
func compactJSON(value any) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(value); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

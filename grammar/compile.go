package grammar

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Field names recognized in a grammar definition, and the static entries
// consulted when the optional ones are absent.
const (
	keysField       = "keys"
	codeField       = "code"
	formatField     = "format"
	templateField   = "template"
	allowField      = "allow"
	skipField       = "skip"
	removeField     = "remove"
	substituteField = "substitute"

	codeDefault     = refPrefix + codeField
	formatDefault   = refPrefix + formatField
	templateDefault = refPrefix + templateField
	allowDefault    = refPrefix + allowField
	skipDefault     = refPrefix + skipField
)

// KeyGroup binds one or more names simultaneously. Each value tuple has
// exactly one element per name.
type KeyGroup struct {
	Names  []string
	Values [][]any
}

// Mutation edits one field of the record template before formatting.
// A string value delimited with {{ }} is a compiled expression evaluated
// against the term's bindings.
type Mutation struct {
	Path  string
	Value any

	source  string
	program *vm.Program
}

// Eval produces the value to write, running the compiled expression when
// the mutation carries one.
func (m *Mutation) Eval(table *Table, static StaticTable) (any, error) {
	if m.program == nil {
		return m.Value, nil
	}

	return evalExpr(m.program, m.source, table, static)
}

// Grammar is one compiled production rule: key groups to expand, a code
// pattern, pattern filters, and the template edits and format used to
// assemble each admitted record.
type Grammar struct {
	Index      int
	Keys       []KeyGroup
	Code       string
	Format     string
	Template   string
	Allow      []string
	Skip       []string
	Remove     []string
	Substitute []Mutation

	static StaticTable
}

// Compile validates one raw grammar definition against the static table
// and template registry. Any error here is fatal for the whole document;
// nothing expands until every grammar compiles. Index identifies the
// definition's position for error context.
func Compile(index int, def map[string]any, static StaticTable, templates *Registry) (*Grammar, error) {
	return compile(index, def, static, templates, true)
}

// CompileRecord compiles a batch production rule whose record template is
// the matched target document rather than a registered template. The
// template field is not consulted; everything else follows Compile.
func CompileRecord(index int, def map[string]any, static StaticTable) (*Grammar, error) {
	return compile(index, def, static, nil, false)
}

func compile(index int, def map[string]any, static StaticTable, templates *Registry, wantTemplate bool) (*Grammar, error) {
	g := &Grammar{Index: index, static: static}

	at := slog.Int("grammar", index)

	if err := g.compileKeys(def, static); err != nil {
		return nil, err.With(at)
	}

	var err *Error

	if g.Skip, err = stringList(def, skipField, skipDefault, static); err != nil {
		return nil, err.With(at)
	}

	if g.Allow, err = stringList(def, allowField, allowDefault, static); err != nil {
		return nil, err.With(at)
	}

	if g.Remove, err = stringList(def, removeField, "", static); err != nil {
		return nil, err.With(at)
	}

	if err := g.compileCode(def, static); err != nil {
		return nil, err.With(at)
	}

	if err := g.compileFormat(def, static); err != nil {
		return nil, err.With(at)
	}

	if wantTemplate {
		if err := g.compileTemplate(def, static, templates); err != nil {
			return nil, err.With(at)
		}
	}

	if err := g.compileSubstitute(def); err != nil {
		return nil, err.With(at)
	}

	return g, nil
}

func (g *Grammar) compileKeys(def map[string]any, static StaticTable) *Error {
	raw, ok := def[keysField]
	if !ok {
		return ErrMissingKeysField
	}

	entries, ok := raw.([]any)
	if !ok {
		return ErrInvalidFieldType.With(
			slog.String("field", keysField),
			slog.String("want", "list"),
		)
	}

	for i, entry := range entries {
		group, err := compileKeyGroup(entry, static)
		if err != nil {
			return err.With(slog.Int("entry", i))
		}

		g.Keys = append(g.Keys, *group)
	}

	return nil
}

func compileKeyGroup(entry any, static StaticTable) (*KeyGroup, *Error) {
	m, ok := entry.(map[string]any)
	if !ok {
		return nil, ErrMalformedKeyEntry.With(slog.Any("entry", entry))
	}

	name, ok := m["key"].(string)
	if !ok {
		return nil, ErrMalformedKeyEntry.With(slog.Any("key", m["key"]))
	}

	rawValues, ok := m["value"].([]any)
	if !ok {
		return nil, ErrMalformedKeyEntry.With(
			slog.String("key", name),
			slog.Any("value", m["value"]),
		)
	}

	group := &KeyGroup{}

	for _, part := range strings.Split(name, ",") {
		group.Names = append(group.Names, strings.TrimSpace(part))
	}

	resolved, err := static.Resolve(rawValues, false)
	if err != nil {
		return nil, WrapError(err).With(slog.String("key", name))
	}

	for _, value := range resolved {
		tuple, ok := value.([]any)
		if !ok {
			tuple = []any{value}
		}

		if len(tuple) != len(group.Names) {
			return nil, ErrKeyArityMismatch.With(
				slog.String("key", name),
				slog.Int("want", len(group.Names)),
				slog.Int("have", len(tuple)),
				slog.Any("value", value),
			)
		}

		group.Values = append(group.Values, tuple)
	}

	return group, nil
}

// stringList reads an optional list field, falling back to the named static
// entry when fallback is non-empty. Static references are resolved first;
// dangling references are tolerated and dropped.
func stringList(def map[string]any, field, fallback string, static StaticTable) ([]string, *Error) {
	raw, ok := def[field]
	if !ok {
		if fallback == "" {
			return nil, nil
		}

		raw = []any{fallback}
	}

	values, ok := raw.([]any)
	if !ok {
		return nil, ErrInvalidFieldType.With(
			slog.String("field", field),
			slog.String("want", "list"),
		)
	}

	resolved, err := static.Resolve(values, true)
	if err != nil {
		return nil, WrapError(err).With(slog.String("field", field))
	}

	out := make([]string, 0, len(resolved))

	for _, value := range resolved {
		s, ok := value.(string)
		if !ok {
			return nil, ErrInvalidFieldType.With(
				slog.String("field", field),
				slog.Any("value", value),
				slog.String("want", "string"),
			)
		}

		out = append(out, s)
	}

	return out, nil
}

func (g *Grammar) compileCode(def map[string]any, static StaticTable) *Error {
	raw, ok := def[codeField]
	if !ok {
		raw = codeDefault
	}

	code, ok, err := static.ResolveString(raw, true)
	if err != nil {
		return WrapError(err).With(slog.String("field", codeField))
	}

	if !ok {
		return ErrInvalidFieldType.With(
			slog.String("field", codeField),
			slog.String("want", "a single string"),
		)
	}

	g.Code = code

	return nil
}

func (g *Grammar) compileFormat(def map[string]any, static StaticTable) *Error {
	raw, ok := def[formatField]
	if !ok {
		raw = formatDefault
	}

	format, ok, err := static.ResolveString(raw, true)
	if err != nil {
		return WrapError(err).With(slog.String("field", formatField))
	}

	if !ok {
		return ErrMissingFormatField
	}

	g.Format = format

	return nil
}

func (g *Grammar) compileTemplate(def map[string]any, static StaticTable, templates *Registry) *Error {
	raw, ok := def[templateField]
	if !ok {
		raw = templateDefault
	}

	name, ok, err := static.ResolveString(raw, true)
	if err != nil {
		return WrapError(err).With(slog.String("field", templateField))
	}

	if !ok {
		return ErrMissingTemplateField
	}

	if templates != nil {
		if _, err := templates.Resolve(name); err != nil {
			return WrapError(err)
		}
	}

	g.Template = name

	return nil
}

func (g *Grammar) compileSubstitute(def map[string]any) *Error {
	raw, ok := def[substituteField]
	if !ok {
		return nil
	}

	entries, ok := raw.([]any)
	if !ok {
		return ErrInvalidFieldType.With(
			slog.String("field", substituteField),
			slog.String("want", "list"),
		)
	}

	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return ErrInvalidFieldType.With(
				slog.String("field", substituteField),
				slog.Int("entry", i),
				slog.String("want", "mapping with key and value"),
			)
		}

		path, ok := m["key"].(string)
		if !ok {
			return ErrInvalidFieldType.With(
				slog.String("field", substituteField),
				slog.Int("entry", i),
				slog.Any("key", m["key"]),
			)
		}

		mut := Mutation{Path: path, Value: m["value"]}

		if source, ok := exprSource(m["value"]); ok {
			program, err := compileExpr(source)
			if err != nil {
				return WrapError(err).With(
					slog.String("field", substituteField),
					slog.String("key", path),
				)
			}

			mut.source = source
			mut.program = program
		}

		g.Substitute = append(g.Substitute, mut)
	}

	return nil
}

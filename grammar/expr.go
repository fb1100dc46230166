package grammar

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression delimiters for computed substitute values.
const (
	exprOpen  = "{{"
	exprClose = "}}"
)

// exprSource extracts the expression inside "{{ ... }}" when value is a
// delimited string, reporting whether it found one.
func exprSource(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}

	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, exprOpen) || !strings.HasSuffix(s, exprClose) {
		return "", false
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, exprOpen), exprClose)), true
}

// compileExpr compiles source once for repeated evaluation. Bound key names
// vary per term, so undefined variables are checked at run time instead.
func compileExpr(source string) (*vm.Program, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).With(slog.String("expr", source))
	}

	return program, nil
}

// evalExpr runs a compiled expression against the current term's bindings.
// The static table is visible under the name "static".
func evalExpr(program *vm.Program, source string, table *Table, static StaticTable) (any, error) {
	env := table.Env()
	env["static"] = map[string]any(static)

	out, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrExprEval.Wrap(err).With(
			slog.String("expr", source),
			slog.Any("table", table),
		)
	}

	return out, nil
}

package grammar

import "iter"

// Term is one fully bound product term: the substituted code and the table
// of bindings that produced it.
type Term struct {
	Code  string
	Table *Table
}

// Count returns the number of product terms before pattern filtering. A
// grammar with no key groups has exactly one (empty) term.
func (g *Grammar) Count() int {
	count := 1
	for _, group := range g.Keys {
		count *= len(group.Values)
	}

	return count
}

// Expand walks the Cartesian product of the key groups in declared order,
// yielding each admitted term. Terms whose code fails the skip/allow
// filters are dropped silently. A code pattern with an unbound token yields
// the error in place of the term; the walk continues with the next tuple.
func (g *Grammar) Expand() iter.Seq2[Term, error] {
	return func(yield func(Term, error) bool) {
		g.walk(0, NewTable(), yield)
	}
}

func (g *Grammar) walk(depth int, table *Table, yield func(Term, error) bool) bool {
	if depth == len(g.Keys) {
		code, err := Substitute(g.Code, table)
		if err != nil {
			return yield(Term{Table: table.Clone()}, err)
		}

		if !Allowed(code, g.Allow, g.Skip) {
			return true
		}

		return yield(Term{Code: code, Table: table.Clone()}, nil)
	}

	group := g.Keys[depth]

	for _, tuple := range group.Values {
		next := table.Clone()
		for i, name := range group.Names {
			next.Bind(name, tuple[i])
		}

		if !g.walk(depth+1, next, yield) {
			return false
		}
	}

	return true
}

// Terms collects every admitted term, stopping at the first error.
func (g *Grammar) Terms() ([]Term, error) {
	var terms []Term

	for term, err := range g.Expand() {
		if err != nil {
			return terms, err
		}

		terms = append(terms, term)
	}

	return terms, nil
}

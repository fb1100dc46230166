// Package grammar implements the production-rule engine: static tables,
// template inheritance, grammar compilation, Cartesian expansion, and
// record assembly.
//
// A document supplies three sections. The static table names shared values
// referenced with an @ prefix. Templates are nested record skeletons that
// may inherit from one another with copyFrom. Grammars are production
// rules: each declares key groups whose value lists multiply into a
// Cartesian product, a code pattern naming each product term, optional
// allow and skip wildcard filters, and the template mutations and format
// string used to assemble one record per admitted term.
//
// Compilation is all-or-nothing: every grammar in a document must compile
// before any record is produced. Assembly errors are per record and leave
// the remaining terms unaffected.
package grammar

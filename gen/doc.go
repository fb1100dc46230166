// Package gen drives grammar expansion over the filesystem in two modes.
//
// Document mode loads one self-contained expansion document (static table,
// templates, grammars, output path) and writes a single aggregated record
// list. Batch mode walks input directories for a dialect (recipes, shapes),
// pairs grammar files with the target files beside them by applyTo
// pattern, and writes one transformed file per matched target. Unmatched
// targets are copied through so the output tree stays complete.
//
// Both modes decode input through Codec, which accepts either strict JSON
// or a relaxed superset tolerant of comments and unquoted keys.
package gen

// Package diff parses unified-diff text into per-file, per-hunk records.
//
// The parser keeps two views of every hunk: the verbatim text as it appeared
// in the diff (embedded into review prompts) and a line-indexed view with
// old/new line numbers (used to anchor review comments). Parsing the same
// input always yields structurally identical output.
package diff

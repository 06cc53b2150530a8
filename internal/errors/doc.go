// Package errors provides structured, actionable error messages for vdiff.
//
// Every error carries a stable code (e.g. "E201") that maps to a short
// message, a longer explanation and, where it helps, a suggestion. Errors
// that originate in a tree document also carry the file location, so the
// CLI can point at the offending line.
//
// # Error Categories
//
//   - invariant: a tree-construction bug reached the diff engine
//   - apply: a patch consumer could not apply a patch
//   - config: the vdiff.yaml file is unreadable or invalid
//   - document: a YAML tree document is unreadable or malformed
//   - protocol: a wire frame could not be decoded
//   - cli: command-line usage errors
//
// # Usage
//
//	err := errors.New("E150").
//	    WithLocation("pages/old.yaml", 12, 5).
//	    WithSuggestion("Each node needs exactly one of tag, text, comment, doctype, symbol or fragment")
//
//	fmt.Println(err.Format())
//
// Invariant violations are not returned. The diff engine panics with an
// *Error so that a broken tree is never silently turned into wrong patches.
package errors

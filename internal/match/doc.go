// Package match ranks page and package names by edit distance so diagnostics
// can suggest the name a user probably meant.
//
// Key functions:
//   - NormalizeName: folds case and strips separators before comparison
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against an unknown one
package match

// Package diagnostic provides structured errors, warnings and notes
// produced while validating and resolving conversion rules.
//
// Key capabilities:
//   - Unknown type reports with "did you mean" suggestions
//   - Duplicate conversion and duplicate function detection
//   - Missing chain links and missing conversion paths
//   - Notes on blanket type sets and native chain links
package diagnostic

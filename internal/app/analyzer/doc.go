// Package analyzer holds the portfolio heuristics: per-token risk and action
// classification, the portfolio risk report, recommendations and the value snapshot.
//
// Every function is pure and safe for concurrent use.
package analyzer

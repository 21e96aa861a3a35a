// Package services holds the error taxonomy and context annotations shared by
// every pipeline component.
//
// Errors are classified by wrapping one of the exported sentinels so callers
// can branch on errors.Is without depending on concrete error types. Context
// helpers carry the per-run request ID and item reference so log lines from
// any stage can be correlated.
package services

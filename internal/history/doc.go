// Package history records each generated label in a local SQLite database so
// operators can audit what was printed, for which item, and when.
package history

// Package logging assembles the structured slog loggers used across
// snipelabel.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a context-aware helper so pipeline stages tag log
// lines with the run's request ID and item reference. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging

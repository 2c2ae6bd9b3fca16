// Package logging assembles the structured slog loggers used by reel.
//
// It owns the console and JSON handlers, level parsing, and output plumbing,
// and exposes attribute helpers plus standard field keys so every component
// tags its records the same way. When a log directory is configured, console
// output is teed to a JSON log file. A no-op logger is provided for tests and
// for library code constructed without one.
package logging

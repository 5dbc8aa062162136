// Package logging assembles structured slog loggers for qrcmigrate.
//
// It owns the console and JSON handlers, parses level strings, and colors
// console level labels when the destination is a terminal. Logs go to stderr
// so stdout stays reserved for command output such as dry-run documents.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging

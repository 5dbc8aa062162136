// Package config loads, normalizes, and validates qrcmigrate configuration.
//
// Every setting has a default that reproduces the classic behavior of the
// migration updater: entries go into the "/" group as <file> elements, the
// previous entry's tail is reset to an eight-space indent, and the new
// entry's tail to a four-space indent. A TOML file can override the target
// group, the entry tag and indentation, the write strategy, and logging.
//
// Always obtain settings through Load so callers receive normalized values
// and clear validation errors.
package config

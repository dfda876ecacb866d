// Package logging builds the slog loggers used across mrs-tools: a compact
// console handler for interactive use and a JSON handler for machine
// consumption, selected by configuration.
package logging

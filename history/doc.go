// Package history persists benchmark summaries in SQLite so that runs can be
// compared over time. Only configuration and timing figures are stored;
// corpus vectors never leave the process.
package history

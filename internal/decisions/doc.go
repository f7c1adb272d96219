// Package decisions persists scan verdicts in a local SQLite database so
// pipeline operators can audit and re-use past classifications.
package decisions

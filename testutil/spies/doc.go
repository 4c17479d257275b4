// Package spies records what the circulation code logs, measures and traces so tests
// can assert on it.
package spies

// Package primitives provides the foundational data structures for the gearbox
// transmission model: gear speed ranges, the five-gear range table and the
// validation rules a table must satisfy before a transmission can use it.
//
// This package uses ONLY the Go standard library.
//
// Core invariants:
// - Tables are plain array values; copying one never aliases another
// - Validation reports exactly one rule, the first one violated
// - Rule messages are fixed strings that callers may compare verbatim
package primitives

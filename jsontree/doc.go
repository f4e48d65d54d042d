// Package jsontree provides the generic JSON value model the validator
// operates on: nil, bool, decimal-backed numbers, string, []any, and an
// object type that preserves key insertion order.
//
// Values are produced by Decode from raw JSON bytes and are never mutated
// by the validator. Numbers are decoded with shopspring/decimal so that
// equality and arithmetic follow JSON semantics (1 and 1.0 are the same
// number) instead of binary float semantics.
package jsontree

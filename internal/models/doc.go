// Package models defines the core domain models for tripsplit.
//
// # Current Models
//
//   - RawExpense: an expense record exactly as it arrives from a caller or
//     an expense file, before any cleaning. Field types are deliberately
//     loose because input files are hand-edited JSON.
//   - Expense: the canonical form produced by the sanitizer. All downstream
//     calculation consumes this type.
//   - Split: tagged variant resolving the polymorphic participants field
//     (equal split over a name list vs. custom split with explicit shares).
//   - BalanceSheet: net position per person, derived and ephemeral.
//   - Transfer: one suggested settlement payment.
//
// For now, people are identified by name strings (no user accounts).
//
// # Design Principles
//
//  1. Raw records round-trip: marshaling a RawExpense reproduces the JSON it
//     was decoded from, including the array-vs-object participants shape and
//     custom-split key order.
//  2. Derived data (BalanceSheet, Transfer) is never persisted; it is
//     recomputed from the current expense collection on demand.
//  3. Canonical expenses marshal to the same JSON shape as raw ones, so
//     sanitized output can be fed back in as input.
package models

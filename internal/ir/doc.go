// Package ir provides the shared data model for fiberna.
//
// This package contains type definitions and the error taxonomy only. Every
// other internal package imports ir; ir imports nothing internal.
//
// Key design constraints:
//   - Material names are NFC-normalized and trimmed at construction time
//   - A CalculationRecord always satisfies core RI > cladding RI
//   - Records are append-only values; nothing in the tree mutates one in place
//   - All JSON tags use snake_case
package ir

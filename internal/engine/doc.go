// Package engine ties the catalog, the NA calculator and the record store
// together into one operation.
//
// Engine.Calculate is the only path that hands a CalculationRecord back to a
// caller, and it does so only after the record has been durably appended.
// A record that was computed but could not be persisted is reported as a
// *NotPersistedError and never reaches the store's mirror.
//
// Execution flow:
//  1. Selections are turned into ir.MaterialChoice values (Choose)
//  2. aperture.Calculate validates and computes the NA
//  3. store.Append writes the record, then extends the mirror
//  4. The confirmed record is returned
package engine

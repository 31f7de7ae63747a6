// Package store provides durable, append-only storage for calculation records.
//
// A Store keeps an in-memory mirror of every record for display and delegates
// durability to a Log. Two logs are provided:
//
//   - CSVLog: the flat file format, one header row followed by one row per record
//   - SQLiteLog: a single calculations table ordered by seq
//
// # Invariants
//
//   - Append never rewrites or reorders existing rows
//   - The mirror is extended only after the durable write succeeded (no phantom records)
//   - LoadAll returns rows in insertion order, oldest first
//   - A row that cannot be parsed stops the load with *ir.CorruptStoreError; rows
//     read before it are still returned
//
// # CSV format
//
//	Core Material,Core RI,Cladding Material,Cladding RI,NA
//	Silica,1.44,Fluoride Glass,1.38,0.411
//
// # SQLite configuration
//
//   - WAL mode, synchronous=NORMAL, busy_timeout=5000
//   - Single connection (one writer)
//
// The store assumes exactly one process accesses the backing file at a time.
package store

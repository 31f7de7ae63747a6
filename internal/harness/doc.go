// Package harness runs conformance scenarios against the calculation engine.
//
// A scenario drives the real engine, catalog and store through a sequence of
// calculations and then checks the outcome of each step, the final store
// contents and the scatter ordering.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog: materials.yaml   # optional, relative to the scenario file
//	steps:
//	  - core: { material: "Silica" }
//	    cladding: { material: "Fluoride Glass (1.38)" }
//	    expect: { na: 0.411 }
//	  - core: { material: Custom, name: "Doped Silica", index: "1.46" }
//	    cladding: { material: Silica }
//	    fail_write: true
//	    expect: { error: store_write }
//	assertions:
//	  - type: record_count
//	    count: 1
//	  - type: record_contains
//	    record: { core: Silica, cladding: Fluoride Glass, na: 0.411 }
//	  - type: scatter_order
//	    labels: [Fluoride Glass]
//
// # Determinism
//
// Every scenario runs in a fresh in-memory SQLite store with sequential row
// IDs and a logical step counter, so traces are identical across runs and can
// be compared with golden files.
package harness

// Package catalog maps material names to refractive indices.
//
// The built-in catalog holds the four materials the calculator ships with.
// A catalog can also be loaded from a YAML or CUE file; either form is checked
// against the embedded CUE schema in schema.cue before use:
//
//	materials:
//	  - name: Silica
//	    index: 1.44
//	  - name: Fluoride Glass
//	    index: 1.38
//
// Selections are turned into an ir.MaterialChoice exactly once, when input is
// collected: a label that matches an entry yields ir.NamedMaterial, anything
// else yields ir.CustomMaterial built from the caller's name and index text.
package catalog

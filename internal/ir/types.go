package ir

import (
	"fmt"
	"math"
	"strconv"
)

// CustomLabel is the selection label that marks a caller-supplied material.
const CustomLabel = "Custom"

// Material is a named refractive index.
type Material struct {
	Name  string  `json:"name" yaml:"name"`
	Index float64 `json:"index" yaml:"index"`
}

// NewMaterial builds a Material with a normalized name.
func NewMaterial(name string, index float64) Material {
	return Material{Name: NormalizeName(name), Index: index}
}

// Label returns the display form "<name> (<index>)".
func (m Material) Label() string {
	return Label(m.Name, m.Index)
}

// Label formats a material name and refractive index for display.
func Label(name string, index float64) string {
	return fmt.Sprintf("%s (%s)", name, FormatNumber(index))
}

// FormatNumber renders a float in its shortest round-trip decimal form.
// This is the form used in the CSV store and in table labels (1.44, 1.4, 0.411).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MaterialChoice is a sealed union of the two ways a material can be selected.
// Only NamedMaterial and CustomMaterial implement it.
type MaterialChoice interface {
	// Material returns the resolved name and refractive index.
	Material() Material

	// IsCustom reports whether the material was supplied by the caller.
	IsCustom() bool

	materialChoice()
}

// NamedMaterial is a material taken from the catalog.
type NamedMaterial struct {
	Name  string
	Index float64
}

func (NamedMaterial) materialChoice() {}

// Material implements MaterialChoice.
func (n NamedMaterial) Material() Material { return NewMaterial(n.Name, n.Index) }

// IsCustom implements MaterialChoice.
func (NamedMaterial) IsCustom() bool { return false }

// CustomMaterial is a material whose name and index were entered by the caller.
type CustomMaterial struct {
	Name  string
	Index float64
}

func (CustomMaterial) materialChoice() {}

// Material implements MaterialChoice.
func (c CustomMaterial) Material() Material { return NewMaterial(c.Name, c.Index) }

// IsCustom implements MaterialChoice.
func (CustomMaterial) IsCustom() bool { return true }

// CalculationRecord is one successful NA calculation.
type CalculationRecord struct {
	CoreMaterial     string  `json:"core_material"`
	CoreRI           float64 `json:"core_ri"`
	CladdingMaterial string  `json:"cladding_material"`
	CladdingRI       float64 `json:"cladding_ri"`
	NA               float64 `json:"na"`
}

// Core returns the core side of the record as a Material.
func (r CalculationRecord) Core() Material {
	return Material{Name: r.CoreMaterial, Index: r.CoreRI}
}

// Cladding returns the cladding side of the record as a Material.
func (r CalculationRecord) Cladding() Material {
	return Material{Name: r.CladdingMaterial, Index: r.CladdingRI}
}

// Validate checks the record invariants.
// Returns nil for a record the NA calculator could have produced.
func (r CalculationRecord) Validate() error {
	if r.CoreMaterial == "" {
		return &MissingNameError{Field: FieldCore}
	}
	if r.CladdingMaterial == "" {
		return &MissingNameError{Field: FieldCladding}
	}
	for _, v := range []float64{r.CoreRI, r.CladdingRI, r.NA} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &InvalidPhysicsError{CoreIndex: r.CoreRI, CladdingIndex: r.CladdingRI}
		}
	}
	if r.CladdingRI >= r.CoreRI {
		return &InvalidPhysicsError{CoreIndex: r.CoreRI, CladdingIndex: r.CladdingRI}
	}
	return nil
}

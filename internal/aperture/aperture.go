package aperture

import (
	"math"

	"github.com/roach88/fiberna/internal/ir"
)

// Precision is the number of decimals kept in a computed NA.
const Precision = 3

// Calculate validates the inputs and returns the record for one calculation.
//
// Errors:
//   - *ir.MissingNameError if coreName or claddingName is empty (core checked first)
//   - *ir.InvalidPhysicsError if claddingIndex >= coreIndex, or an index is
//     negative, NaN or infinite
func Calculate(coreName string, coreIndex float64, claddingName string, claddingIndex float64) (ir.CalculationRecord, error) {
	coreName = ir.NormalizeName(coreName)
	claddingName = ir.NormalizeName(claddingName)

	if coreName == "" {
		return ir.CalculationRecord{}, &ir.MissingNameError{Field: ir.FieldCore}
	}
	if claddingName == "" {
		return ir.CalculationRecord{}, &ir.MissingNameError{Field: ir.FieldCladding}
	}

	if !usable(coreIndex) || !usable(claddingIndex) || claddingIndex >= coreIndex {
		return ir.CalculationRecord{}, &ir.InvalidPhysicsError{CoreIndex: coreIndex, CladdingIndex: claddingIndex}
	}

	na := NA(coreIndex, claddingIndex)
	if !usable(na) {
		return ir.CalculationRecord{}, &ir.InvalidPhysicsError{CoreIndex: coreIndex, CladdingIndex: claddingIndex}
	}

	return ir.CalculationRecord{
		CoreMaterial:     coreName,
		CoreRI:           coreIndex,
		CladdingMaterial: claddingName,
		CladdingRI:       claddingIndex,
		NA:               na,
	}, nil
}

// CalculateMaterials is Calculate for two resolved materials.
func CalculateMaterials(core, cladding ir.Material) (ir.CalculationRecord, error) {
	return Calculate(core.Name, core.Index, cladding.Name, cladding.Index)
}

// NA returns the rounded numerical aperture without validating the inputs.
// Callers must guarantee coreIndex > claddingIndex >= 0.
//
// Indices whose squares overflow are handled through the ratio
// claddingIndex/coreIndex, so the result stays finite.
func NA(coreIndex, claddingIndex float64) float64 {
	if sq := coreIndex * coreIndex; !math.IsInf(sq, 0) {
		return Round3(math.Sqrt(sq - claddingIndex*claddingIndex))
	}
	r := claddingIndex / coreIndex
	return Round3(coreIndex * math.Sqrt((1-r)*(1+r)))
}

// Round3 rounds v to three decimals, half away from zero.
//
//	Round3(0.41134) == 0.411
//	Round3(0.0625)  == 0.063
//
// Values too large to scale have no fractional digits and are returned as is.
func Round3(v float64) float64 {
	const scale = 1000
	scaled := v * scale
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / scale
}

func usable(index float64) bool {
	return index >= 0 && !math.IsInf(index, 0) && !math.IsNaN(index)
}

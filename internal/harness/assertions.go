package harness

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/roach88/fiberna/internal/ir"
	"github.com/roach88/fiberna/internal/present"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string                 // Assertion type for categorization
	Expected string                 // Human-readable expected outcome
	Actual   string                 // Human-readable actual outcome
	Records  []ir.CalculationRecord // Final store contents for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nRecords:\n")
	for i, rec := range e.Records {
		fmt.Fprintf(&buf, "  [%d] %s / %s NA=%s\n", i+1,
			rec.Core().Label(), rec.Cladding().Label(), ir.FormatNumber(rec.NA))
	}

	return buf.String()
}

// assertRecordCount checks the store holds exactly the expected number of records.
func assertRecordCount(records []ir.CalculationRecord, assertion Assertion) error {
	if len(records) == *assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordCount,
		Expected: fmt.Sprintf("%d records", *assertion.Count),
		Actual:   fmt.Sprintf("%d records", len(records)),
		Records:  records,
	}
}

// assertRecordContains checks some record matches every field set in the assertion.
func assertRecordContains(records []ir.CalculationRecord, assertion Assertion) error {
	for _, rec := range records {
		if matchRecord(rec, assertion.Record) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertRecordContains,
		Expected: fmt.Sprintf("record matching %s", describeMatch(assertion.Record)),
		Actual:   "not found in store",
		Records:  records,
	}
}

// assertScatterOrder checks the cladding names of the scatter series, in order.
func assertScatterOrder(records []ir.CalculationRecord, assertion Assertion) error {
	labels := []string{}
	if len(records) > 0 {
		points, err := present.ScatterSeries(records)
		if err != nil {
			return err
		}
		for _, p := range points {
			labels = append(labels, p.Label)
		}
	}

	if slices.Equal(labels, assertion.Labels) {
		return nil
	}
	return &AssertionError{
		Type:     AssertScatterOrder,
		Expected: fmt.Sprintf("%v", assertion.Labels),
		Actual:   fmt.Sprintf("%v", labels),
		Records:  records,
	}
}

// matchRecord checks rec against the fields set in m (subset match).
func matchRecord(rec ir.CalculationRecord, m *RecordMatch) bool {
	if m.Core != "" && rec.CoreMaterial != ir.NormalizeName(m.Core) {
		return false
	}
	if m.Cladding != "" && rec.CladdingMaterial != ir.NormalizeName(m.Cladding) {
		return false
	}
	return floatMatches(m.CoreRI, rec.CoreRI) &&
		floatMatches(m.CladdingRI, rec.CladdingRI) &&
		floatMatches(m.NA, rec.NA)
}

func floatMatches(expected *float64, actual float64) bool {
	return expected == nil || math.Abs(*expected-actual) <= naTolerance
}

func describeMatch(m *RecordMatch) string {
	var parts []string
	if m.Core != "" {
		parts = append(parts, "core="+m.Core)
	}
	if m.CoreRI != nil {
		parts = append(parts, "core_ri="+ir.FormatNumber(*m.CoreRI))
	}
	if m.Cladding != "" {
		parts = append(parts, "cladding="+m.Cladding)
	}
	if m.CladdingRI != nil {
		parts = append(parts, "cladding_ri="+ir.FormatNumber(*m.CladdingRI))
	}
	if m.NA != nil {
		parts = append(parts, "na="+ir.FormatNumber(*m.NA))
	}
	if len(parts) == 0 {
		return "{any}"
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// EvaluateAssertions evaluates all assertions against the result's final records.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertRecordCount:
			if assertion.Count == nil {
				err = fmt.Errorf("assertion[%d]: record_count requires count", i)
			} else {
				err = assertRecordCount(result.Records, assertion)
			}
		case AssertRecordContains:
			if assertion.Record == nil {
				err = fmt.Errorf("assertion[%d]: record_contains requires record", i)
			} else {
				err = assertRecordContains(result.Records, assertion)
			}
		case AssertScatterOrder:
			err = assertScatterOrder(result.Records, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

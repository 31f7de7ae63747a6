package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/fiberna/internal/ir"
)

// NotPersistedError reports a calculation that succeeded but could not be stored.
// The computed record is kept for diagnostics only; it is not in the store.
type NotPersistedError struct {
	Record ir.CalculationRecord
	Err    error
}

// Error implements the error interface.
func (e *NotPersistedError) Error() string {
	return fmt.Sprintf("calculation %s / %s (NA %s) was not saved: %v",
		e.Record.CoreMaterial, e.Record.CladdingMaterial, ir.FormatNumber(e.Record.NA), e.Err)
}

func (e *NotPersistedError) Unwrap() error { return e.Err }

// IsNotPersisted returns true if err is or wraps a NotPersistedError.
// Uses errors.As to handle wrapped errors.
func IsNotPersisted(err error) bool {
	var np *NotPersistedError
	return errors.As(err, &np)
}

// IsInputError returns true if err was caused by the user's input
// (bad number, missing name, or indices that cannot guide light).
func IsInputError(err error) bool {
	switch ir.KindOf(err) {
	case ir.KindParse, ir.KindMissingName, ir.KindInvalidPhysics:
		return true
	default:
		return false
	}
}

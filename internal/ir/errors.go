package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes the failures a calculation or store operation can report.
type ErrorKind string

const (
	// KindParse indicates a refractive index that is not a valid real number.
	KindParse ErrorKind = "parse"

	// KindMissingName indicates an empty core or cladding material name.
	KindMissingName ErrorKind = "missing_name"

	// KindInvalidPhysics indicates a cladding index that does not allow guided propagation.
	KindInvalidPhysics ErrorKind = "invalid_physics"

	// KindCorruptStore indicates a persisted row that cannot be parsed as a record.
	KindCorruptStore ErrorKind = "corrupt_store"

	// KindStoreWrite indicates the durable medium rejected a write.
	KindStoreWrite ErrorKind = "store_write"

	// KindEmptyData indicates a chart was requested with zero records.
	KindEmptyData ErrorKind = "empty_data"

	// KindUnknown is returned by KindOf for errors outside the taxonomy.
	KindUnknown ErrorKind = "unknown"
)

// Field names used to identify the offending input.
const (
	FieldCore     = "core"
	FieldCladding = "cladding"
)

// kinded is implemented by every error in the taxonomy.
type kinded interface {
	error
	Kind() ErrorKind
}

// KindOf returns the ErrorKind of the first taxonomy error in err's chain.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// ParseError reports text that could not be parsed as a refractive index.
type ParseError struct {
	// Field identifies the input ("core", "cladding"), if known.
	Field string

	// Text is the rejected input.
	Text string

	// Err is the underlying strconv error, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s refractive index %q is not a valid number", e.Field, e.Text)
	}
	return fmt.Sprintf("refractive index %q is not a valid number", e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind implements the taxonomy.
func (e *ParseError) Kind() ErrorKind { return KindParse }

// MissingNameError reports an empty material name.
type MissingNameError struct {
	Field string
}

func (e *MissingNameError) Error() string {
	return fmt.Sprintf("%s material name must be provided", e.Field)
}

// Kind implements the taxonomy.
func (e *MissingNameError) Kind() ErrorKind { return KindMissingName }

// InvalidPhysicsError reports indices for which the NA is not a real number.
type InvalidPhysicsError struct {
	CoreIndex     float64
	CladdingIndex float64
}

func (e *InvalidPhysicsError) Error() string {
	return fmt.Sprintf("core refractive index (%s) must be greater than cladding refractive index (%s)",
		FormatNumber(e.CoreIndex), FormatNumber(e.CladdingIndex))
}

// Kind implements the taxonomy.
func (e *InvalidPhysicsError) Kind() ErrorKind { return KindInvalidPhysics }

// CorruptStoreError reports a persisted row that does not match the record schema.
type CorruptStoreError struct {
	// Location is the store path or DSN.
	Location string

	// Line is the 1-based CSV line or the SQLite seq of the bad row.
	Line int

	// Reason describes what is wrong with the row.
	Reason string

	Err error
}

func (e *CorruptStoreError) Error() string {
	msg := fmt.Sprintf("corrupt store %s: row %d: %s", e.Location, e.Line, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptStoreError) Unwrap() error { return e.Err }

// Kind implements the taxonomy.
func (e *CorruptStoreError) Kind() ErrorKind { return KindCorruptStore }

// StoreWriteError reports a durable write the medium rejected.
type StoreWriteError struct {
	Location string
	Op       string // "initialize" or "append"
	Err      error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store %s: %s failed: %v", e.Location, e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// Kind implements the taxonomy.
func (e *StoreWriteError) Kind() ErrorKind { return KindStoreWrite }

// EmptyDataError reports a chart request against a store with no records.
type EmptyDataError struct {
	Chart string
}

func (e *EmptyDataError) Error() string {
	if e.Chart != "" {
		return fmt.Sprintf("no data for %s chart: run at least one calculation before plotting", e.Chart)
	}
	return "no data: run at least one calculation before plotting"
}

// Is matches any EmptyDataError regardless of chart, so errors.Is(err, ErrNoData) works.
func (e *EmptyDataError) Is(target error) bool {
	_, ok := target.(*EmptyDataError)
	return ok
}

// Kind implements the taxonomy.
func (e *EmptyDataError) Kind() ErrorKind { return KindEmptyData }

// ErrNoData is the sentinel for EmptyDataError.
var ErrNoData = &EmptyDataError{}

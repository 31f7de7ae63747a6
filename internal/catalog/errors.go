package catalog

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Catalog validation error codes (E100-E199).
const (
	ErrSchemaViolation   = "E100" // file does not satisfy schema.cue
	ErrEmptyName         = "E101" // name is required
	ErrInvalidIndex      = "E102" // index must be a positive finite number
	ErrDuplicateName     = "E103" // names must be unique
	ErrReservedName      = "E104" // "Custom" cannot be a catalog entry
	ErrUnsupportedFormat = "E105" // file extension is not .yaml, .yml or .cue
)

// ValidationError reports a catalog entry or file that cannot be used.
type ValidationError struct {
	Code    string    `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Pos     token.Pos `json:"-"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("[%s] %s:%d:%d: %s: %s",
			e.Code, e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

func fieldPath(i int, name string) string {
	return fmt.Sprintf("materials[%d].%s", i, name)
}

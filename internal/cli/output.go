package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/fiberna/internal/catalog"
	"github.com/roach88/fiberna/internal/ir"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure (bad input, no data, scenarios failed)
	ExitCommandError = 2 // Command error (store, config or catalog problems)
)

// Error codes reported in CLIError.Code.
// Catalog errors carry their own E1xx code (see catalog.ValidationError).
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeConfig         = "E002" // Config file unreadable or invalid
	ErrCodeParse          = "E201" // Refractive index is not a number
	ErrCodeMissingName    = "E202" // Material name is empty
	ErrCodeInvalidPhysics = "E203" // Cladding index not below core index
	ErrCodeCorruptStore   = "E301" // Persisted row cannot be read
	ErrCodeStoreWrite     = "E302" // Durable write rejected
	ErrCodeNoData         = "E401" // Chart requested on an empty store
	ErrCodeTestFailed     = "E501" // One or more scenarios failed
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	ErrCode string // Error code shown to the user (E001, E201, ...)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Classify maps an error to its user-facing error code and exit code.
// Input problems exit 1; problems with the store, config or catalog exit 2.
func Classify(err error) (string, int) {
	var catErr *catalog.ValidationError
	if errors.As(err, &catErr) {
		return catErr.Code, ExitCommandError
	}

	switch ir.KindOf(err) {
	case ir.KindParse:
		return ErrCodeParse, ExitFailure
	case ir.KindMissingName:
		return ErrCodeMissingName, ExitFailure
	case ir.KindInvalidPhysics:
		return ErrCodeInvalidPhysics, ExitFailure
	case ir.KindEmptyData:
		return ErrCodeNoData, ExitFailure
	case ir.KindCorruptStore:
		return ErrCodeCorruptStore, ExitCommandError
	case ir.KindStoreWrite:
		return ErrCodeStoreWrite, ExitCommandError
	default:
		return ErrCodeGeneric, ExitCommandError
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status   string      `json:"status"`             // "ok" or "error"
	Data     interface{} `json:"data,omitempty"`     // success payload
	Error    *CLIError   `json:"error,omitempty"`    // error details
	Warnings []string    `json:"warnings,omitempty"` // non-fatal problems
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string      `json:"code"`              // "E001", "E201", etc.
	Message string      `json:"message"`           // human-readable message
	Details interface{} `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Warn reports a non-fatal problem on the diagnostic writer,
// so JSON output on Writer stays parseable.
func (f *OutputFormatter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(f.GetErrWriter(), "Warning: "+format+"\n", args...)
}

// Fail outputs err with its error code and returns the matching ExitError,
// which wraps err.
// A chart requested on an empty store is shown as a warning in text mode.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := Classify(err)

	var details interface{}
	if kind := ir.KindOf(err); kind != ir.KindUnknown {
		details = map[string]string{"kind": string(kind)}
	}

	if code == ErrCodeNoData && f.Format != "json" {
		fmt.Fprintf(f.Writer, "Warning [%s]: %s\n", code, err.Error())
	} else {
		_ = f.Error(code, err.Error(), details)
	}

	return &ExitError{Code: exit, ErrCode: code, Message: code, Err: err}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/leapscale/internal/leapsec"
	"github.com/roach88/leapscale/internal/scale"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Check failure (scenarios failed, golden mismatch)
	ExitCommandError = 2 // Command error (bad timestamp, unreadable table, etc.)
)

// Error codes reported in CLI responses.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeInvalidArg  = "E002" // Malformed or out-of-range input
	ErrCodeOverflow    = "E003" // Result outside the representable range
	ErrCodeTableFailed = "E004" // Leap-second table could not be loaded
	ErrCodeNotFound    = "E005" // Record or path not found
	ErrCodeStoreFailed = "E006" // Database error
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set when the command already wrote the error to its output.
	Reported bool
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
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
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
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
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

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err in the configured format and returns an ExitError with
// ExitCommandError, for commands whose input could not be processed.
func (f *OutputFormatter) Fail(message string, err error) error {
	var details any
	var se *scale.Error
	if errors.As(err, &se) {
		details = map[string]string{"op": se.Op, "scale_code": string(se.Code)}
	}
	if outErr := f.Error(ErrorCodeFor(err), fmt.Sprintf("%s: %v", message, err), details); outErr != nil {
		return outErr
	}
	return reported(WrapExitError(ExitCommandError, message, err))
}

// reportError writes an error response and returns the matching ExitError.
func (f *OutputFormatter) reportError(code, message string, details any, err error) error {
	if outErr := f.Error(code, message, details); outErr != nil {
		return outErr
	}
	if err == nil {
		return reported(NewExitError(ExitCommandError, message))
	}
	return reported(WrapExitError(ExitCommandError, message, err))
}

func reported(e *ExitError) *ExitError {
	e.Reported = true
	return e
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
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

// ErrorCodeFor maps an error to the CLI error code that describes it.
func ErrorCodeFor(err error) string {
	var tableErr *leapsec.TableError
	switch {
	case scale.IsArithmeticOverflow(err):
		return ErrCodeOverflow
	case scale.IsInvalidArgument(err), errors.Is(err, strconv.ErrSyntax), errors.Is(err, strconv.ErrRange):
		return ErrCodeInvalidArg
	case errors.As(err, &tableErr):
		return ErrCodeTableFailed
	case errors.Is(err, sql.ErrNoRows):
		return ErrCodeNotFound
	default:
		return ErrCodeGeneric
	}
}

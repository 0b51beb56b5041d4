// Package errors provides the engine's unified error model: a typed
// Code plus an HTTP status mapping, following the error kinds defined
// for the scheduling domain.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an AppError.
type Code string

const (
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeNotFound     Code = "NOT_FOUND"
	CodeTimeout      Code = "TIMEOUT"

	// Scheduling domain error kinds.
	CodePreconditionFailure Code = "PRECONDITION_FAILURE"
	CodePinConflict         Code = "PIN_CONFLICT"
	CodeNoSolution          Code = "NO_SOLUTION"
	CodeResidualViolations  Code = "RESIDUAL_VIOLATIONS"
	CodeStorageFailure      Code = "STORAGE_FAILURE"
	CodeValidationFailed    Code = "VALIDATION_FAILED"
)

// AppError is the engine's error type. Cause chains through Unwrap so
// callers can still errors.Is/As against underlying driver errors.
type AppError struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
	Cause      error                  `json:"-"`
	Fields     map[string]interface{} `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails attaches a free-text detail string.
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// WithCause chains an underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField attaches a structured field for logging.
func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New constructs an AppError with its HTTP status derived from code.
func New(code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap constructs an AppError around an existing error.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodePinConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodePreconditionFailure, CodeNoSolution:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is an AppError of the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code from err, or CodeUnknown.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetHTTPStatus extracts the HTTP status from err.
func GetHTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// PreconditionFailure reports that FeasibilityChecker rejected a run.
// Recoverable by the operator; the reason is surfaced verbatim.
func PreconditionFailure(reason string) *AppError {
	return New(CodePreconditionFailure, reason)
}

// NoSolution reports that the memetic loop exhausted maxGenerations
// without producing any non-empty best schedule.
func NoSolution(reason string) *AppError {
	return New(CodeNoSolution, reason)
}

// StorageFailure wraps a persistence-layer error. The orchestrator
// aborts the run on this and preserves the previously persisted state.
func StorageFailure(store string, cause error) *AppError {
	return Wrap(cause, CodeStorageFailure, fmt.Sprintf("%s operation failed", store))
}

// NotFound reports a missing resource.
func NotFound(resource, id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %q not found", resource, id))
}

// InvalidInput reports a malformed caller-supplied field.
func InvalidInput(field, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("field %q invalid: %s", field, reason))
}

// ValidationErrors collects multiple field-level validation failures,
// e.g. from a CSV import pass where rows are rejected but not raised.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// ValidationError is a single field-level failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s - %s", ve.Errors[0].Field, ve.Errors[0].Message)
}

// Add records one field-level failure.
func (ve *ValidationErrors) Add(field, message string) {
	ve.Errors = append(ve.Errors, ValidationError{Field: field, Message: message})
}

// HasErrors reports whether any failures were recorded.
func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToAppError converts the collected failures into a single AppError.
func (ve *ValidationErrors) ToAppError() *AppError {
	err := New(CodeValidationFailed, "validation failed")
	err.Fields = make(map[string]interface{})
	for _, e := range ve.Errors {
		err.Fields[e.Field] = e.Message
	}
	return err
}

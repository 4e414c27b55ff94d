// File: error.go
// Title: Core Error Implementation
// Description: Implements the structured Error type used across mdwloc. An Error
//              carries a code, a severity, the failing operation and free-form
//              details, and wraps an optional cause so errors.Is/As keep working.

package error

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Error represents a structured error with context, codes, and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	timestamp time.Time

	details       map[string]interface{}
	operation     string
	correlationID string

	// severityPinned is set once WithSeverity has been called so that a later
	// WithCode does not override an explicit choice.
	severityPinned bool
}

// MaxErrorChainDepth limits how deep Wrap will nest before flattening.
const MaxErrorChainDepth = 15

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with additional context. Code, severity and
// details of a wrapped *Error are inherited.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if depth := chainDepth(err); depth >= MaxErrorChainDepth {
		return &Error{
			message:   fmt.Sprintf("%s (chain truncated at depth %d): %s", message, MaxErrorChainDepth, rootCause(err).Error()),
			code:      GetCode(err),
			severity:  SeverityHigh,
			timestamp: time.Now(),
			details:   map[string]interface{}{"truncated": true, "original_depth": depth},
		}
	}

	wrapped := &Error{
		message:   message,
		cause:     err,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
		details:   make(map[string]interface{}),
	}

	var inner *Error
	if stderrors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
		wrapped.correlationID = inner.correlationID
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}

	return wrapped
}

func chainDepth(err error) int {
	depth := 0
	for current := err; current != nil && depth < MaxErrorChainDepth*2; current = stderrors.Unwrap(current) {
		depth++
	}
	return depth
}

func rootCause(err error) error {
	last := err
	for current := err; current != nil; current = stderrors.Unwrap(current) {
		last = current
	}
	return last
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code. Unless a severity was set explicitly, the
// severity follows the code.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	if !e.severityPinned {
		e.severity = GetSeverityFromCode(code)
	}
	return e
}

// WithSeverity sets the error severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	e.severityPinned = true
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// WithDetails adds multiple key-value details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	for k, v := range details {
		e.details[k] = v
	}
	return e
}

// WithOperation sets the operation that caused the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithCorrelationID ties the error to a generation run or request
func (e *Error) WithCorrelationID(id string) *Error {
	e.correlationID = id
	return e
}

// Message returns the error's own message without the cause chain
func (e *Error) Message() string {
	return e.message
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the error severity
func (e *Error) Severity() Severity {
	return e.severity
}

// Timestamp returns when the error occurred
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// Detail returns a single detail value
func (e *Error) Detail(key string) (interface{}, bool) {
	v, ok := e.details[key]
	return v, ok
}

// Operation returns the operation that caused the error
func (e *Error) Operation() string {
	return e.operation
}

// CorrelationID returns the correlation ID, if any
func (e *Error) CorrelationID() string {
	return e.correlationID
}

// RootCause returns the deepest error in the chain
func (e *Error) RootCause() error {
	return rootCause(e)
}

// String returns a detailed multi-line representation of the error
func (e *Error) String() string {
	parts := []string{
		fmt.Sprintf("Error: %s", e.message),
		fmt.Sprintf("Code: %s", e.code),
		fmt.Sprintf("Severity: %s", e.severity),
		fmt.Sprintf("Timestamp: %s", e.timestamp.Format(time.RFC3339)),
	}

	if e.operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", e.operation))
	}
	if e.correlationID != "" {
		parts = append(parts, fmt.Sprintf("CorrelationID: %s", e.correlationID))
	}

	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		detailStrs := make([]string, 0, len(keys))
		for _, k := range keys {
			detailStrs = append(detailStrs, fmt.Sprintf("%s=%v", k, e.details[k]))
		}
		parts = append(parts, fmt.Sprintf("Details: {%s}", strings.Join(detailStrs, ", ")))
	}

	if e.cause != nil {
		parts = append(parts, fmt.Sprintf("Cause: %s", e.cause.Error()))
	}

	return strings.Join(parts, "\n")
}

// MarshalJSON implements json.Marshaler for structured logging
func (e *Error) MarshalJSON() ([]byte, error) {
	data := map[string]interface{}{
		"message":   e.message,
		"code":      e.code,
		"severity":  e.severity.String(),
		"timestamp": e.timestamp.Format(time.RFC3339),
		"details":   e.details,
	}

	if e.operation != "" {
		data["operation"] = e.operation
	}
	if e.correlationID != "" {
		data["correlation_id"] = e.correlationID
	}
	if e.cause != nil {
		data["cause"] = e.cause.Error()
	}

	return json.Marshal(data)
}

// HasCode reports whether any *Error in err's chain carries code
func HasCode(err error, code Code) bool {
	for current := err; current != nil; current = stderrors.Unwrap(current) {
		if mdwErr, ok := current.(*Error); ok && mdwErr.code == code {
			return true
		}
	}
	return false
}

// GetCode returns the error code from an error, or CodeUnknown if not a mdwloc error
func GetCode(err error) Code {
	var mdwErr *Error
	if stderrors.As(err, &mdwErr) {
		return mdwErr.code
	}
	return CodeUnknown
}

// GetSeverity returns the error severity from an error, or SeverityMedium if not a mdwloc error
func GetSeverity(err error) Severity {
	var mdwErr *Error
	if stderrors.As(err, &mdwErr) {
		return mdwErr.severity
	}
	return SeverityMedium
}

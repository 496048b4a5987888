// SPDX-License-Identifier: MIT

// Package validate provides validation utilities shared by the skwatch document
// model and the application configuration.
package validate

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Issue classes. Every Error carries one of them so callers can use errors.Is
// on the accumulated ValidationError.
var (
	// ErrStructural marks a missing or mistyped attribute, or an unknown kind/attribute.
	ErrStructural = errors.New("structural error")
	// ErrUniqueness marks an identifier that must be unique but is not.
	ErrUniqueness = errors.New("uniqueness error")
	// ErrValue marks an attribute that is present but holds an invalid value.
	ErrValue = errors.New("value error")
)

// Error represents a validation error
type Error struct {
	Field   string      // Field name or document path that failed validation
	Value   interface{} // The invalid value
	Message string      // Human-readable error message
	Class   error       // One of ErrStructural, ErrUniqueness, ErrValue
}

// Error implements the error interface
func (e Error) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap returns the issue class.
func (e Error) Unwrap() error {
	return e.Class
}

// ClassName returns a short label for the issue class ("structural", "uniqueness", "value").
func (e Error) ClassName() string {
	switch {
	case errors.Is(e.Class, ErrStructural):
		return "structural"
	case errors.Is(e.Class, ErrUniqueness):
		return "uniqueness"
	default:
		return "value"
	}
}

// Validator accumulates validation errors and can produce a ValidationError when invalid.
type Validator struct {
	errors []Error
}

// ValidationError bundles multiple validation errors into a single error value.
type ValidationError struct {
	errors []Error
}

// New creates a new validator
func New() *Validator {
	return &Validator{
		errors: make([]Error, 0),
	}
}

// AddError adds a value validation error
func (v *Validator) AddError(field, message string, value interface{}) {
	v.add(ErrValue, field, message, value)
}

// Structural records a missing, mistyped or unknown attribute.
func (v *Validator) Structural(field, message string) {
	v.add(ErrStructural, field, message, nil)
}

// Duplicate records a uniqueness violation for value.
func (v *Validator) Duplicate(field, message string, value interface{}) {
	v.add(ErrUniqueness, field, message, value)
}

func (v *Validator) add(class error, field, message string, value interface{}) {
	v.errors = append(v.errors, Error{
		Field:   field,
		Value:   value,
		Message: message,
		Class:   class,
	})
}

// Merge appends the issues of err when it is a ValidationError (or a single Error).
// Any other non-nil error is recorded as a structural issue on field.
func (v *Validator) Merge(field string, err error) {
	if err == nil {
		return
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		v.errors = append(v.errors, ve.errors...)
		return
	}
	var single Error
	if errors.As(err, &single) {
		v.errors = append(v.errors, single)
		return
	}
	v.Structural(field, err.Error())
}

// IsValid returns true if no errors have been accumulated
func (v *Validator) IsValid() bool {
	return len(v.errors) == 0
}

// Errors returns all accumulated validation errors
func (v *Validator) Errors() []Error {
	return v.errors
}

// Err converts the accumulated validation errors into an error value.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}

	copied := make([]Error, len(v.errors))
	copy(copied, v.errors)

	return ValidationError{errors: copied}
}

// Errors returns the individual validation errors making up the validation failure.
func (e ValidationError) Errors() []Error {
	return e.errors
}

// Unwrap exposes every issue so errors.Is matches any contained class.
func (e ValidationError) Unwrap() []error {
	out := make([]error, len(e.errors))
	for i, err := range e.errors {
		out[i] = err
	}
	return out
}

// Error implements the error interface for ValidationError.
func (e ValidationError) Error() string {
	if len(e.errors) == 0 {
		return ""
	}

	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}

	// Multiple errors - format as list
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Issues extracts the individual issues from err, or nil when err is not a validation failure.
func Issues(err error) []Error {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Errors()
	}
	var single Error
	if errors.As(err, &single) {
		return []Error{single}
	}
	return nil
}

// Port validates a port number (1-65535)
func (v *Validator) Port(field string, port int) {
	if port <= 0 || port > 65535 {
		v.AddError(field,
			fmt.Sprintf("port must be between 1 and 65535, got %d", port),
			port)
	}
}

// ListenAddr validates a host:port listen address. The host may be empty.
func (v *Validator) ListenAddr(field, addr string) {
	if strings.TrimSpace(addr) == "" {
		v.AddError(field, "listen address cannot be empty", addr)
		return
	}
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid listen address: %v", err), addr)
		return
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.AddError(field, fmt.Sprintf("invalid port %q", portStr), addr)
		return
	}
	v.Port(field, port)
}

// Range validates that an integer is within a specified range (inclusive)
func (v *Validator) Range(field string, value, minVal, maxVal int) {
	if value < minVal || value > maxVal {
		v.AddError(field,
			fmt.Sprintf("value must be between %d and %d, got %d", minVal, maxVal, value),
			value)
	}
}

// RangeFloat validates that a float is within a specified range (inclusive)
func (v *Validator) RangeFloat(field string, value, minVal, maxVal float64) {
	if value < minVal || value > maxVal {
		v.AddError(field,
			fmt.Sprintf("value must be between %g and %g, got %g", minVal, maxVal, value),
			value)
	}
}

// File validates that path names an existing regular file.
func (v *Validator) File(field, path string) {
	if path == "" {
		v.AddError(field, "file path cannot be empty", path)
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			v.AddError(field, "file does not exist", path)
			return
		}
		v.AddError(field, fmt.Sprintf("cannot access file: %v", err), path)
		return
	}
	if info.IsDir() {
		v.AddError(field, "path is a directory", path)
	}
}

// NotEmpty validates that a string is not empty or whitespace-only
func (v *Validator) NotEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "value cannot be empty", value)
	}
}

// OneOf validates that a value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field,
		fmt.Sprintf("value must be one of %v, got %q", allowed, value),
		value)
}

// NonNegative validates that a number is non-negative (>= 0)
func (v *Validator) NonNegative(field string, value int) {
	if value < 0 {
		v.AddError(field, fmt.Sprintf("value cannot be negative, got %d", value), value)
	}
}

// Custom allows custom validation logic
// The validator function should return an error if validation fails
func (v *Validator) Custom(field string, value interface{}, validator func(interface{}) error) {
	if err := validator(value); err != nil {
		v.AddError(field, err.Error(), value)
	}
}

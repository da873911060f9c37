// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates user input or catalog content failed validation.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// CatalogError indicates the plug-in catalog could not be loaded.
type CatalogError struct {
	Cause  error
	Source string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s unavailable: %v", e.Source, e.Cause)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// NewCatalogError creates a new catalog error.
func NewCatalogError(source string, cause error) *CatalogError {
	return &CatalogError{
		Source: source,
		Cause:  cause,
	}
}

// OperationError indicates a lifecycle operation on a plug-in failed.
type OperationError struct {
	Cause     error
	Operation string
	Plugin    string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Plugin, e.Cause)
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewOperationError creates a new operation error.
func NewOperationError(operation, plugin string, cause error) *OperationError {
	return &OperationError{
		Operation: operation,
		Plugin:    plugin,
		Cause:     cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}

// Package errors provides custom error types for the legisync system.
// These errors enable programmatic error checking and carry enough
// context to tell which source document or reference entity was at fault.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the legisync system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a record already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// MissingAttributeError reports the first required XML attribute that was
// absent while mapping an element onto an entity.
type MissingAttributeError struct {
	Element   string
	Attribute string
}

// Error implements the error interface
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("element %s is missing required attribute %s", e.Element, e.Attribute)
}

// Is implements errors.Is support
func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewMissingAttributeError creates a new MissingAttributeError
func NewMissingAttributeError(element, attribute string) *MissingAttributeError {
	return &MissingAttributeError{Element: element, Attribute: attribute}
}

// MissingElementError reports a required child element that was absent
// from a source document.
type MissingElementError struct {
	Parent  string
	Element string
}

// Error implements the error interface
func (e *MissingElementError) Error() string {
	return fmt.Sprintf("element %s is missing required child element %s", e.Parent, e.Element)
}

// Is implements errors.Is support
func (e *MissingElementError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ReferenceNotFoundError indicates that a reference entity lookup
// (person, term, committee, bill) failed. Callers decide whether that
// is fatal or merely logged and skipped.
type ReferenceNotFoundError struct {
	Kind string
	Key  string
}

// Error implements the error interface
func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// Is implements errors.Is support
func (e *ReferenceNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewReferenceNotFoundError creates a new ReferenceNotFoundError
func NewReferenceNotFoundError(kind, key string) *ReferenceNotFoundError {
	return &ReferenceNotFoundError{Kind: kind, Key: key}
}

// DuplicateTermError indicates that creating a taxonomy term violated
// the (classification, normalized name) uniqueness invariant.
type DuplicateTermError struct {
	Classification string
	Name           string
}

// Error implements the error interface
func (e *DuplicateTermError) Error() string {
	return fmt.Sprintf("duplicate %s term %q", e.Classification, e.Name)
}

// Is implements errors.Is support
func (e *DuplicateTermError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing source documents
type ParseError struct {
	Format  string // "xml", "yaml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "stat", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Path: path, Message: message, Err: err}
}

// ResourceError represents an error during store operations
type ResourceError struct {
	Operation string // "create", "update", "delete", "find", "load"
	Resource  string // "bill", "term", "cosponsor", "file record"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

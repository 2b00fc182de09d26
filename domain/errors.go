package domain

import "fmt"

// Error codes for domain errors
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodePathTraversal     = "PATH_TRAVERSAL"
	ErrCodeSourceNotFound    = "SOURCE_NOT_FOUND"
	ErrCodeTargetConflict    = "TARGET_CONFLICT"
	ErrCodeTargetNotFound    = "TARGET_NOT_FOUND"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// DomainError represents a structured error with a code, message, and optional cause
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a DomainError with an arbitrary code
func NewDomainError(code, message string, cause error) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError creates an error for invalid caller input
func NewInvalidInputError(message string, cause error) error {
	return DomainError{Code: ErrCodeInvalidInput, Message: message, Cause: cause}
}

// NewFileNotFoundError creates an error for a missing file
func NewFileNotFoundError(path string, cause error) error {
	return DomainError{Code: ErrCodeFileNotFound, Message: fmt.Sprintf("file not found: %s", path), Cause: cause}
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return DomainError{Code: ErrCodeConfigError, Message: message, Cause: cause}
}

// NewOutputError creates an error for output/write failures
func NewOutputError(message string, cause error) error {
	return DomainError{Code: ErrCodeOutputError, Message: message, Cause: cause}
}

// NewPathTraversalError creates an error for a path escaping the library root
func NewPathTraversalError(path string) error {
	return DomainError{Code: ErrCodePathTraversal, Message: fmt.Sprintf("path escapes library root: %s", path)}
}

// NewSourceNotFoundError creates an error for a migration source that does not exist
func NewSourceNotFoundError(path string) error {
	return DomainError{Code: ErrCodeSourceNotFound, Message: fmt.Sprintf("source does not exist: %s", path)}
}

// NewTargetNotFoundError creates an error for a merge target that does not exist
func NewTargetNotFoundError(path string) error {
	return DomainError{Code: ErrCodeTargetNotFound, Message: fmt.Sprintf("merge target does not exist: %s", path)}
}

// NewTargetConflictError creates an error for a migration target that already exists
func NewTargetConflictError(path string) error {
	return DomainError{Code: ErrCodeTargetConflict, Message: fmt.Sprintf("Cannot overwrite existing target: %s", path)}
}

// NewUnsupportedFormatError creates an error for an unknown output format
func NewUnsupportedFormatError(format string) error {
	return DomainError{Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("unsupported output format: %s", format)}
}

// IsErrorCode reports whether err is a DomainError carrying the given code
func IsErrorCode(err error, code string) bool {
	if err == nil {
		return false
	}
	if de, ok := err.(DomainError); ok {
		return de.Code == code
	}
	return false
}

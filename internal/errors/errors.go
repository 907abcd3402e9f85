package errors

import (
	"errors"
	"fmt"
)

// Exit codes for loadout
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitSkillNotFound = 2
	ExitConfigError   = 3
	ExitLinkError     = 4
	ExitValidation    = 5

	// ExitCheckFailed deliberately matches ExitGeneralError: scripts
	// gate on `loadout check` with a plain zero/nonzero test.
	ExitCheckFailed = 1
)

// LoadoutError is the base error type for loadout
type LoadoutError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LoadoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LoadoutError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *LoadoutError) ExitCode() int {
	return e.Code
}

// New creates a new LoadoutError
func New(code int, message string) *LoadoutError {
	return &LoadoutError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LoadoutError
func Wrap(code int, message string, cause error) *LoadoutError {
	return &LoadoutError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// SkillNotFound returns an error for a skill missing from all source directories
func SkillNotFound(name string) *LoadoutError {
	return New(ExitSkillNotFound, fmt.Sprintf("skill not found: %s", name))
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *LoadoutError {
	return Wrap(ExitConfigError, message, cause)
}

// LinkError returns an error for symlink operations
func LinkError(op string, cause error) *LoadoutError {
	return Wrap(ExitLinkError, fmt.Sprintf("link %s failed", op), cause)
}

// ChecksFailed returns the error used to signal Error-severity findings
func ChecksFailed(count int) *LoadoutError {
	return New(ExitCheckFailed, fmt.Sprintf("checks failed: %d error(s)", count))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *LoadoutError {
	return New(ExitValidation, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var loadoutErr *LoadoutError
	if errors.As(err, &loadoutErr) {
		return loadoutErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

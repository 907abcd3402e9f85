// Package errors provides typed errors with exit codes for loadout.
//
// # Error Types
//
// LoadoutError is the base error type that wraps an error with an exit code:
//
//	type LoadoutError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
// Defined exit codes for different error categories:
//
//	ExitSuccess       = 0  // Success
//	ExitGeneralError  = 1  // General/unknown errors
//	ExitSkillNotFound = 2  // Skill does not exist in any source
//	ExitConfigError   = 3  // Configuration error
//	ExitLinkError     = 4  // Symlink operation failed
//	ExitValidation    = 5  // Input validation failure
//	ExitCheckFailed   = 1  // Diagnostic run surfaced errors (same as general)
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.SkillNotFound("my-skill")
//	errors.ConfigError("cannot read loadout.toml", err)
//	errors.LinkError("create", err)
//	errors.ChecksFailed(3)
//
// # Extracting Exit Codes
//
// Use GetExitCode to extract the exit code from an error chain:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors

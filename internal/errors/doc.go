// Package apperrors defines the application's structured error types and
// exit codes, and maps failures to user-facing status lines.
//
// All types implement Unwrap where they carry a cause, so errors.Is and
// errors.As see through them.
package apperrors

// Package errors provides structured error handling for ssss.
// It defines sentinel errors, exit codes, and helpers for adding
// context and suggestions to errors returned by the core packages.
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned to the shell per spec.md §7's propagation policy.
const (
	ExitSuccess = 0 // Successful execution
	ExitGeneral = 1 // Any fatal error
)

// SSSSError is the structured error type used throughout ssss. Lower
// layers attach a Code identifying the taxonomy entry (spec.md §7) and
// never partially succeed: any secret-bearing storage allocated before
// the error occurred is zeroed before the error is returned.
type SSSSError struct {
	Code       string            // Machine-readable error kind
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable remediation, if any
	Cause      error             // Underlying error, if any
	ExitCode   int
}

func (e *SSSSError) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *SSSSError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for SSSSError by comparing Code.
func (e *SSSSError) Is(target error) bool {
	var t *SSSSError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors, one per kind in spec.md §7.
var (
	ErrInputTooLong = &SSSSError{
		Code:     "INPUT_TOO_LONG",
		Message:  "input string too long",
		ExitCode: ExitGeneral,
	}

	ErrInvalidSyntax = &SSSSError{
		Code:     "INVALID_SYNTAX",
		Message:  "invalid syntax",
		ExitCode: ExitGeneral,
	}

	ErrEntropyOpen = &SSSSError{
		Code:     "ENTROPY_OPEN",
		Message:  "couldn't open entropy source",
		ExitCode: ExitGeneral,
	}

	ErrEntropyClose = &SSSSError{
		Code:     "ENTROPY_CLOSE",
		Message:  "couldn't close entropy source",
		ExitCode: ExitGeneral,
	}

	ErrEntropyIO = &SSSSError{
		Code:     "ENTROPY_IO",
		Message:  "couldn't read from entropy source",
		ExitCode: ExitGeneral,
	}

	ErrSecretIO = &SSSSError{
		Code:     "SECRET_IO",
		Message:  "I/O error while reading secret",
		ExitCode: ExitGeneral,
	}

	ErrInvalidSecurityLevel = &SSSSError{
		Code:     "INVALID_SECURITY_LEVEL",
		Message:  "security level invalid",
		ExitCode: ExitGeneral,
	}

	ErrShareIO = &SSSSError{
		Code:     "SHARE_IO",
		Message:  "I/O error while reading shares",
		ExitCode: ExitGeneral,
	}

	ErrIllegalShareLength = &SSSSError{
		Code:     "ILLEGAL_SHARE_LENGTH",
		Message:  "share has illegal length",
		ExitCode: ExitGeneral,
	}

	ErrShareLevelMismatch = &SSSSError{
		Code:     "SHARE_LEVEL_MISMATCH",
		Message:  "shares have different security levels",
		ExitCode: ExitGeneral,
	}

	ErrInvalidShare = &SSSSError{
		Code:     "INVALID_SHARE",
		Message:  "invalid share",
		ExitCode: ExitGeneral,
	}

	ErrInconsistent = &SSSSError{
		Code:     "INCONSISTENT",
		Message:  "shares inconsistent. Perhaps a single share was used twice",
		ExitCode: ExitGeneral,
	}

	ErrUnknown = &SSSSError{
		Code:     "UNKNOWN",
		Message:  "unknown error",
		ExitCode: ExitGeneral,
	}
)

// WithSuggestion returns a copy of base carrying a remediation hint.
func WithSuggestion(base *SSSSError, suggestion string) *SSSSError {
	clone := *base
	clone.Suggestion = suggestion
	return &clone
}

// WithDetail returns a copy of base with an additional key/value of
// context (e.g. the offending share text or the expected length).
func WithDetail(base *SSSSError, key, value string) *SSSSError {
	clone := *base
	clone.Details = make(map[string]string, len(base.Details)+1)
	for k, v := range base.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// WithCause returns a copy of base wrapping an underlying error.
func WithCause(base *SSSSError, cause error) *SSSSError {
	clone := *base
	clone.Cause = cause
	return &clone
}

// ExitCode returns the process exit code for err: ExitGeneral for any
// non-nil error (including ones not originating from this package),
// ExitSuccess for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var se *SSSSError
	if errors.As(err, &se) {
		return se.ExitCode
	}
	return ExitGeneral
}

// Package errors provides structured error handling for xrbwallet.
// It defines the error kinds raised by the codec, address, cryptobox and
// store layers, their CLI exit codes, and helpers for adding context,
// details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Wrong password or corrupted record
	ExitNotFound = 4 // Resource not found
)

// WalletError is the structured error type for xrbwallet.
type WalletError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *WalletError) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
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

func (e *WalletError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for WalletError. Two WalletErrors match when
// their codes match.
func (e *WalletError) Is(target error) bool {
	var t *WalletError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &WalletError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &WalletError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Codec errors.
	ErrMalformedInput = &WalletError{
		Code:     "MALFORMED_INPUT",
		Message:  "malformed input length or value",
		ExitCode: ExitInput,
	}

	ErrInvalidCharacter = &WalletError{
		Code:     "INVALID_CHARACTER",
		Message:  "character is not in the address alphabet",
		ExitCode: ExitInput,
	}

	// Address errors.
	ErrInvalidFormat = &WalletError{
		Code:     "INVALID_FORMAT",
		Message:  "invalid address format",
		ExitCode: ExitInput,
	}

	ErrChecksumMismatch = &WalletError{
		Code:     "CHECKSUM_MISMATCH",
		Message:  "address checksum does not match",
		ExitCode: ExitInput,
	}

	// Cryptobox and store errors.
	ErrWrongPasswordOrCorrupt = &WalletError{
		Code:     "WRONG_PASSWORD_OR_CORRUPT",
		Message:  "decryption failed - wrong password or corrupted wallet",
		ExitCode: ExitAuth,
	}

	ErrTooManyAttempts = &WalletError{
		Code:       "TOO_MANY_ATTEMPTS",
		Message:    "too many failed unlock attempts",
		Suggestion: "wait before trying again",
		ExitCode:   ExitAuth,
	}

	ErrWalletNotFound = &WalletError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &WalletError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitInput,
	}

	ErrSessionClosed = &WalletError{
		Code:     "SESSION_CLOSED",
		Message:  "wallet session is closed",
		ExitCode: ExitGeneral,
	}

	ErrStorage = &WalletError{
		Code:     "STORAGE_ERROR",
		Message:  "wallet storage failed",
		ExitCode: ExitGeneral,
	}

	// Key material errors.
	ErrInvalidSeed = &WalletError{
		Code:     "INVALID_SEED",
		Message:  "seed must be 32 bytes (64 hex characters)",
		ExitCode: ExitInput,
	}

	ErrInvalidMnemonic = &WalletError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrInvalidSignature = &WalletError{
		Code:     "INVALID_SIGNATURE",
		Message:  "signature does not verify",
		ExitCode: ExitInput,
	}

	// Amount errors.
	ErrInvalidAmount = &WalletError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount format",
		ExitCode: ExitInput,
	}

	// Config-specific errors.
	ErrConfigInvalid = &WalletError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}

	// Backup-specific errors.
	ErrBackupCorrupted = &WalletError{
		Code:     "BACKUP_CORRUPTED",
		Message:  "backup file is corrupted",
		ExitCode: ExitInput,
	}

	ErrBackupNotFound = &WalletError{
		Code:     "BACKUP_NOT_FOUND",
		Message:  "backup file not found",
		ExitCode: ExitNotFound,
	}
)

// New creates a new WalletError with the given code and message.
func New(code, message string) *WalletError {
	return &WalletError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var we *WalletError
	if errors.As(err, &we) {
		return &WalletError{
			Code:       we.Code,
			Message:    fmt.Sprintf("%s: %s", msg, we.Message),
			Details:    we.Details,
			Suggestion: we.Suggestion,
			Cause:      we.Cause,
			ExitCode:   we.ExitCode,
		}
	}

	return &WalletError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var we *WalletError
	if errors.As(err, &we) {
		return &WalletError{
			Code:       we.Code,
			Message:    we.Message,
			Details:    details,
			Suggestion: we.Suggestion,
			Cause:      we.Cause,
			ExitCode:   we.ExitCode,
		}
	}

	return &WalletError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var we *WalletError
	if errors.As(err, &we) {
		return &WalletError{
			Code:       we.Code,
			Message:    we.Message,
			Details:    we.Details,
			Suggestion: suggestion,
			Cause:      we.Cause,
			ExitCode:   we.ExitCode,
		}
	}

	return &WalletError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// WithCause attaches an underlying error to a WalletError kind while
// keeping its code.
func WithCause(kind *WalletError, cause error) error {
	return &WalletError{
		Code:       kind.Code,
		Message:    kind.Message,
		Details:    kind.Details,
		Suggestion: kind.Suggestion,
		Cause:      cause,
		ExitCode:   kind.ExitCode,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var we *WalletError
	if errors.As(err, &we) {
		return we.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var we *WalletError
	if errors.As(err, &we) {
		return we.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

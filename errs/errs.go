// Package errs defines the sentinel errors returned by the fst-writer packages.
//
// Callers should match errors with errors.Is; additional context (offending
// value, limit, id) is attached with fmt.Errorf's %w wrapping rather than
// encoded into distinct error types.
package errs

import "errors"

var (
	// ErrStringTooLong is returned when the header's version or date string
	// exceeds its fixed-length field. Over-long hierarchy names are reported
	// with ErrNameTooLong instead.
	ErrStringTooLong = errors.New("string exceeds maximum length for field")

	// ErrTimeDecrease is returned by TimeChange when the given time is less
	// than the section's current end time.
	ErrTimeDecrease = errors.New("time must be monotonically non-decreasing")

	// ErrInvalidSignalID is returned when a SignalId is unknown to the writer.
	ErrInvalidSignalID = errors.New("invalid signal id")

	// ErrInvalidCharacter is returned when a value byte is not part of the
	// 2-state or 9-state logic alphabet.
	ErrInvalidCharacter = errors.New("invalid value character")

	// ErrInvalidValueLength is returned when a written value is longer than
	// the signal's declared width, or the value cannot be extended to it.
	ErrInvalidValueLength = errors.New("invalid value length")

	// ErrScopeNotClosed is returned by Finish when scope depth is non-zero.
	ErrScopeNotClosed = errors.New("scope depth must be zero before body entry")

	// ErrAlreadyFinished is returned when an operation is attempted after
	// the writer has already been finished.
	ErrAlreadyFinished = errors.New("writer already finished")

	// ErrWrongPhase names a header-phase or body-phase operation invoked in
	// the wrong phase of the writer's life cycle. No package in this module
	// returns it: the phases are separate types, and a HeaderWriter call
	// after Finish returns ErrAlreadyFinished.
	ErrWrongPhase = errors.New("operation invalid in current writer phase")

	// ErrInvalidAlias is returned when Var is given an alias handle that
	// does not refer to a previously registered, non-alias signal.
	ErrInvalidAlias = errors.New("alias must reference a previously registered signal")

	// ErrNameTooLong is returned when a scope or var name exceeds the
	// hierarchy buffer's name length limit.
	ErrNameTooLong = errors.New("hierarchy name too long")

	// ErrSignalValueCountMismatch reports that a generated value's length
	// does not match expectations. No code or test in this module currently
	// returns or checks it.
	ErrSignalValueCountMismatch = errors.New("signal value count mismatch")
)

// Package errors provides sentinel errors and error types for the chess rules engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules or does not
	// match the position it is applied to.
	ErrIllegalMove = errors.New("illegal move")

	// ErrOutOfBounds indicates square coordinates outside the board.
	ErrOutOfBounds = errors.New("square out of bounds")

	// ErrInvariantViolation indicates the position's internal bookkeeping
	// disagrees with itself (roster, grid, or king references).
	ErrInvariantViolation = errors.New("position invariant violated")

	// ErrNothingToRevert indicates there is no applied move to take back.
	ErrNothingToRevert = errors.New("no move to revert")

	// ErrSnapshotNotFound indicates an unknown snapshot ID.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError represents a FEN parsing error with field context.
type ParseError struct {
	Err      error  // The underlying error (ErrInvalidFEN when nil)
	Field    string // Name of the FEN field, e.g. "placement"
	Index    int    // 1-based field index (0 if not applicable)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with field and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Field != "" {
		if e.Index > 0 {
			parts = append(parts, fmt.Sprintf("field %d (%s)", e.Index, e.Field))
		} else {
			parts = append(parts, e.Field)
		}
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if len(parts) > 0 {
		return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Unwrap())
	}
	return e.Unwrap().Error()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidFEN
	}
	return e.Err
}

// OutOfBoundsError reports coordinates or square text that do not name a
// square on the board.
type OutOfBoundsError struct {
	File int
	Rank int
	Text string // Original text when parsing algebraic notation
}

func (e *OutOfBoundsError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("square %q: %v", e.Text, ErrOutOfBounds)
	}
	return fmt.Sprintf("square (file %d, rank %d): %v", e.File, e.Rank, ErrOutOfBounds)
}

// Unwrap returns ErrOutOfBounds.
func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// InvariantViolation reports a piece that is not where the position's
// bookkeeping says it should be.
type InvariantViolation struct {
	Piece  fmt.Stringer // The piece involved (may be nil)
	Roster string       // The roster the piece was expected in
	Detail string
}

func (e *InvariantViolation) Error() string {
	var parts []string
	if e.Piece != nil {
		parts = append(parts, e.Piece.String())
	}
	if e.Roster != "" {
		parts = append(parts, "roster "+e.Roster)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	if len(parts) == 0 {
		return ErrInvariantViolation.Error()
	}
	return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), ErrInvariantViolation)
}

// Unwrap returns ErrInvariantViolation.
func (e *InvariantViolation) Unwrap() error {
	return ErrInvariantViolation
}

// MoveError wraps errors with move context: the ply at which the move was
// attempted and the move text as the caller supplied it.
type MoveError struct {
	Err      error  // The underlying error
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}
	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

package expression

import (
	"errors"
	"strconv"
)

// Kind classifies an evaluation failure.
type Kind int

const (
	// InvalidCharacter means the input contains a character outside the
	// expression alphabet.
	InvalidCharacter Kind = iota + 1
	// MalformedExpression covers structural problems: empty input,
	// illegal token adjacency, mismatched parentheses and missing operands.
	MalformedExpression
	// MalformedNumber means a number has more than one decimal point.
	MalformedNumber
	// DivisionByZero means the final result is infinite or not a number.
	DivisionByZero
)

func (k Kind) String() string {
	switch k {
	case InvalidCharacter:
		return "invalid_character"
	case MalformedExpression:
		return "malformed_expression"
	case MalformedNumber:
		return "malformed_number"
	case DivisionByZero:
		return "division_by_zero"
	}
	return "unknown"
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrInvalidCharacter    = errors.New("invalid character")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrMalformedNumber     = errors.New("malformed number")
	ErrDivisionByZero      = errors.New("division by zero")
)

// Error is the error returned for any input that cannot be evaluated.
type Error struct {
	// Kind is the failure class.
	Kind Kind
	// Col is the 1-based byte position of the offending character, or 0 when
	// the failure is not tied to a position, e.g. a non-finite result.
	Col int
	// Msg describes the failure.
	Msg string
}

func (err *Error) Error() string {
	if err.Col <= 0 {
		return err.Msg
	}
	return strconv.Itoa(err.Col) + ": " + err.Msg
}

// Unwrap returns the sentinel for the error's kind.
func (err *Error) Unwrap() error {
	switch err.Kind {
	case InvalidCharacter:
		return ErrInvalidCharacter
	case MalformedExpression:
		return ErrMalformedExpression
	case MalformedNumber:
		return ErrMalformedNumber
	case DivisionByZero:
		return ErrDivisionByZero
	}
	return nil
}

func errorAt(kind Kind, col int, msg string) *Error {
	return &Error{Kind: kind, Col: col, Msg: msg}
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

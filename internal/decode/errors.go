package decode

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota + 1
	UnterminatedBlock
	TruncatedInput
	UnknownBinaryToken
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedBlock:
		return "unterminated block"
	case TruncatedInput:
		return "truncated input"
	case UnknownBinaryToken:
		return "unknown binary token"
	}
	return "parse error"
}

// Position locates a token in the input. Line and Column are 1-based and
// only set for text input.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line > 0 {
		return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
	}
	return fmt.Sprintf("offset 0x%x", p.Offset)
}

// ParseError is returned for any input the decoders cannot turn into a tree.
// A ParseError aborts the whole extraction.
type ParseError struct {
	Kind    ErrorKind
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s at %s", e.Kind, e.Pos)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Message)
}

// IsKind reports whether err is a ParseError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == kind
}

// ErrNoDictionary is returned when binary input is selected but no token
// dictionary was configured.
var ErrNoDictionary = errors.New("binary save requires a token dictionary")

func newError(kind ErrorKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

package yamlcore

import (
	"fmt"

	"github.com/yamlcore-go/yamlcore/internal/token"
)

// Position is a byte offset paired with its 0-based line and column,
// carried by every parse error per spec.md §7.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("offset %d, line %d, column %d", p.Offset, p.Line, p.Column)
}

// ErrorKind enumerates the eleven error kinds spec.md §7 defines, plus
// NotFound for reading a node's tag or anchor name when none is set.
type ErrorKind string

const (
	InvalidEncoding       ErrorKind = "invalid-encoding"
	InvalidEscape         ErrorKind = "invalid-escape"
	InvalidIndentation    ErrorKind = "invalid-indentation"
	InvalidCharacterInTag ErrorKind = "invalid-character-in-tag"
	UnterminatedString    ErrorKind = "unterminated-string"
	InvalidNumber         ErrorKind = "invalid-number"
	InvalidAlias          ErrorKind = "invalid-alias"
	DuplicateKey          ErrorKind = "duplicate-key"
	TypeError             ErrorKind = "type-error"
	OutOfRange            ErrorKind = "out-of-range"
	InvalidUsage          ErrorKind = "invalid-usage"
	NotFound              ErrorKind = "not-found"
)

// Error is the single error type surfaced across the public API, carrying
// the taxonomy kind plus, for parse/lex/encoding failures, the source
// position.
type Error struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos == (Position{}) {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Pos)
}

type kindedError interface {
	Error() string
	ErrorKind() string
}

type positionedError interface {
	ErrorPos() token.Position
}

type offsetError interface {
	ErrorOffset() int
}

// wrapError normalizes an error from any internal layer (srcenc, lexer,
// parse, tree) into the single public *Error type.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	ke, ok := err.(kindedError)
	if !ok {
		return err
	}
	var pos Position
	if pe, ok := err.(positionedError); ok {
		p := pe.ErrorPos()
		pos = Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
	} else if oe, ok := err.(offsetError); ok {
		pos = Position{Offset: oe.ErrorOffset()}
	}
	return &Error{Kind: ErrorKind(ke.ErrorKind()), Pos: pos, Msg: ke.Error()}
}

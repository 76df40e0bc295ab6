package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore-go/yamlcore/internal/lexer"
	"github.com/yamlcore-go/yamlcore/internal/token"
)

func TestErrorStringWithoutPosition(t *testing.T) {
	e := &Error{Kind: TypeError, Msg: "expected string, got int"}
	require.Equal(t, "type-error: expected string, got int", e.Error())
}

func TestErrorStringWithPosition(t *testing.T) {
	e := &Error{Kind: InvalidEscape, Pos: Position{Offset: 5, Line: 1, Column: 2}, Msg: "bad escape"}
	require.Contains(t, e.Error(), "invalid-escape: bad escape")
	require.Contains(t, e.Error(), "line 1")
}

func TestWrapErrorPassesThroughPublicError(t *testing.T) {
	orig := &Error{Kind: NotFound, Msg: "x"}
	require.Same(t, orig, wrapError(orig))
}

func TestWrapErrorNormalizesLexerError(t *testing.T) {
	inner := &lexer.Error{
		Kind: "invalid-usage",
		Pos:  token.Position{Offset: 3, Line: 0, Column: 3},
		Msg:  "empty anchor/alias name",
	}
	wrapped := wrapError(inner)
	var yerr *Error
	require.ErrorAs(t, wrapped, &yerr)
	require.Equal(t, InvalidUsage, yerr.Kind)
	require.Equal(t, 3, yerr.Pos.Offset)
}

func TestWrapErrorNilIsNil(t *testing.T) {
	require.NoError(t, wrapError(nil))
}

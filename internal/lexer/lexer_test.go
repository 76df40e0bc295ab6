package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcore-go/yamlcore/internal/token"
)

func allTokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New([]byte(src))
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexerPlainScalar(t *testing.T) {
	toks := allTokens(t, "hello world")
	require.Equal(t, token.Scalar, toks[0].Type)
	require.Equal(t, "hello world", toks[0].Value)
	require.Equal(t, token.PlainScalar, toks[0].ScalarStyle)
}

func TestLexerBlockMappingShape(t *testing.T) {
	toks := allTokens(t, "key: value\n")
	require.Equal(t, token.Scalar, toks[0].Type)
	require.Equal(t, "key", toks[0].Value)
	require.Equal(t, token.ValueIndicator, toks[1].Type)
	require.Equal(t, token.Scalar, toks[2].Type)
	require.Equal(t, "value", toks[2].Value)
}

func TestLexerBlockSequenceEntry(t *testing.T) {
	toks := allTokens(t, "- a\n- b\n")
	require.Equal(t, token.BlockSequenceEntry, toks[0].Type)
	require.Equal(t, token.Scalar, toks[1].Type)
	require.Equal(t, "a", toks[1].Value)
	require.Equal(t, token.BlockSequenceEntry, toks[2].Type)
	require.Equal(t, "b", toks[3].Value)
}

func TestLexerFlowSequence(t *testing.T) {
	toks := allTokens(t, "[a, b, c]")
	require.Equal(t, token.FlowSequenceStart, toks[0].Type)
	require.Equal(t, "a", toks[1].Value)
	require.Equal(t, token.FlowEntry, toks[2].Type)
	require.Equal(t, "b", toks[3].Value)
	require.Equal(t, token.FlowEntry, toks[4].Type)
	require.Equal(t, "c", toks[5].Value)
	require.Equal(t, token.FlowSequenceEnd, toks[6].Type)
}

func TestLexerAnchorAndAlias(t *testing.T) {
	toks := allTokens(t, "&a 1\n*a\n")
	require.Equal(t, token.Anchor, toks[0].Type)
	require.Equal(t, "a", toks[0].Value)
	require.Equal(t, token.Scalar, toks[1].Type)
	require.Equal(t, token.Alias, toks[2].Type)
	require.Equal(t, "a", toks[2].Value)
}

func TestLexerTagForms(t *testing.T) {
	toks := allTokens(t, "!!str\n")
	require.Equal(t, token.Tag, toks[0].Type)
	require.Equal(t, "!!", toks[0].TagHandle)
	require.Equal(t, "str", toks[0].TagSuffix)

	toks = allTokens(t, "!<tag:example.com,2000:foo>\n")
	require.Equal(t, token.Tag, toks[0].Type)
	require.True(t, toks[0].Verbatim)
	require.Equal(t, "tag:example.com,2000:foo", toks[0].TagSuffix)
}

func TestLexerSingleQuotedEscapedQuote(t *testing.T) {
	toks := allTokens(t, "'it''s'")
	require.Equal(t, token.Scalar, toks[0].Type)
	require.Equal(t, "it's", toks[0].Value)
	require.Equal(t, token.SingleQuotedScalar, toks[0].ScalarStyle)
}

func TestLexerDoubleQuotedEscapes(t *testing.T) {
	toks := allTokens(t, `"a\tb\nc"`)
	require.Equal(t, "a\tb\nc", toks[0].Value)
}

func TestLexerDoubleQuotedUnterminated(t *testing.T) {
	l := New([]byte(`"unterminated`))
	_, err := l.Next()
	require.Error(t, err)
}

func TestLexerLiteralBlockScalarClip(t *testing.T) {
	toks := allTokens(t, "|\n  line one\n  line two\n")
	require.Equal(t, "line one\nline two\n", toks[0].Value)
	require.Equal(t, token.LiteralScalar, toks[0].ScalarStyle)
}

func TestLexerLiteralBlockScalarStrip(t *testing.T) {
	toks := allTokens(t, "|-\n  line one\n  line two\n")
	require.Equal(t, "line one\nline two", toks[0].Value)
}

func TestLexerFoldedBlockScalar(t *testing.T) {
	toks := allTokens(t, ">\n  folded\n  text\n")
	require.Equal(t, "folded text\n", toks[0].Value)
	require.Equal(t, token.FoldedScalar, toks[0].ScalarStyle)
}

func TestLexerDocumentMarkers(t *testing.T) {
	toks := allTokens(t, "---\nhello\n...\n")
	require.Equal(t, token.DocumentStart, toks[0].Type)
	require.Equal(t, token.Scalar, toks[1].Type)
	require.Equal(t, token.DocumentEnd, toks[2].Type)
}

func TestLexerDirective(t *testing.T) {
	toks := allTokens(t, "%YAML 1.2\n---\n")
	require.Equal(t, token.Directive, toks[0].Type)
	require.Equal(t, "YAML", toks[0].DirectiveName)
	require.Equal(t, []string{"1.2"}, toks[0].DirectiveArgs)
}

func TestLexerComment(t *testing.T) {
	toks := allTokens(t, "key: value # a comment\n")
	require.Equal(t, "value", toks[2].Value)
}

func TestLexerEmptyAnchorNameFails(t *testing.T) {
	l := New([]byte("& "))
	_, err := l.Next()
	require.Error(t, err)
}

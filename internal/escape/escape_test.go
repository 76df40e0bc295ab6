package escape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnescapeSimple(t *testing.T) {
	cases := map[rune][]byte{
		'0': {0},
		'n': {0x0A},
		't': {0x09},
		'"': {'"'},
		'\\': {'\\'},
		'/': {'/'},
		'N': {0xC2, 0x85},
	}
	for r, want := range cases {
		got, consumed, err := Unescape(r, nil)
		require.NoError(t, err, "escape %q", r)
		require.Equal(t, 0, consumed)
		require.Equal(t, want, got, "escape %q", r)
	}
}

func TestUnescapeHex(t *testing.T) {
	got, consumed, err := Unescape('x', []rune("41"))
	require.NoError(t, err)
	require.Equal(t, 2, consumed)
	require.Equal(t, "A", string(got))

	got, consumed, err = Unescape('u', []rune("00e9"))
	require.NoError(t, err)
	require.Equal(t, 4, consumed)
	require.Equal(t, "é", string(got))
}

func TestUnescapeHexTruncated(t *testing.T) {
	_, _, err := Unescape('x', []rune("4"))
	require.Error(t, err)
}

func TestUnescapeHexInvalidDigit(t *testing.T) {
	_, _, err := Unescape('x', []rune("zz"))
	require.Error(t, err)
}

func TestUnescapeSurrogateRejected(t *testing.T) {
	_, _, err := Unescape('u', []rune("D800"))
	require.Error(t, err)
}

func TestUnescapeUnknown(t *testing.T) {
	_, _, err := Unescape('q', nil)
	require.Error(t, err)
}

func TestValidTagURIByte(t *testing.T) {
	require.True(t, ValidTagURIByte('a'))
	require.True(t, ValidTagURIByte('-'))
	require.True(t, ValidTagURIByte(':'))
	require.False(t, ValidTagURIByte(' '))
	require.False(t, ValidTagURIByte('%'))
}

func TestValidatePercentEncoded(t *testing.T) {
	require.NoError(t, ValidatePercentEncoded("foo%20bar"))
	require.NoError(t, ValidatePercentEncoded("tag:example.com,2000:app/foo"))
	require.Error(t, ValidatePercentEncoded("foo%2"))
	require.Error(t, ValidatePercentEncoded("foo%zz"))
	require.Error(t, ValidatePercentEncoded("foo bar"))
}

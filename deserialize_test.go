package yamlcore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeserializeFromBytesStringAndReader(t *testing.T) {
	const src = "a: 1\nb: 2\n"

	n, err := Deserialize([]byte(src))
	require.NoError(t, err)
	v, err := n.Get(NewString("a"))
	require.NoError(t, err)
	i, _ := v.Int()
	require.Equal(t, int64(1), i)

	n, err = Deserialize(src)
	require.NoError(t, err)
	require.True(t, n.Contains(NewString("b")))

	n, err = Deserialize(strings.NewReader(src))
	require.NoError(t, err)
	require.True(t, n.Contains(NewString("a")))
}

func TestDeserializeUnsupportedSourceType(t *testing.T) {
	_, err := Deserialize(42)
	require.Error(t, err)
	var yerr *Error
	require.ErrorAs(t, err, &yerr)
	require.Equal(t, InvalidUsage, yerr.Kind)
}

func TestDeserializeRejectsZeroOrMultipleDocuments(t *testing.T) {
	_, err := Deserialize("")
	require.Error(t, err)

	_, err = Deserialize("---\na: 1\n---\nb: 2\n")
	require.Error(t, err)
}

func TestDeserializeDocsEmptySourceYieldsEmptySlice(t *testing.T) {
	docs, err := DeserializeDocs("")
	require.NoError(t, err)
	require.NotNil(t, docs)
	require.Len(t, docs, 0)
}

func TestDeserializeWithVersionOption(t *testing.T) {
	n, err := Deserialize("v: yes\n", WithVersion(V1_1))
	require.NoError(t, err)
	v, err := n.Get(NewString("v"))
	require.NoError(t, err)
	require.Equal(t, BoolKind, v.Kind())
}

func TestDeserializePropagatesLexError(t *testing.T) {
	_, err := Deserialize(`"unterminated`)
	require.Error(t, err)
	var yerr *Error
	require.ErrorAs(t, err, &yerr)
	require.Equal(t, UnterminatedString, yerr.Kind)
}

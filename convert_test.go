package yamlcore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestIntoBuiltinScalars(t *testing.T) {
	var b bool
	require.NoError(t, Into(NewBool(true), &b))
	require.True(t, b)

	var i int
	require.NoError(t, Into(NewInt(42), &i))
	require.Equal(t, 42, i)

	var f float64
	require.NoError(t, Into(NewFloat(1.5), &f))
	require.Equal(t, 1.5, f)

	var s string
	require.NoError(t, Into(NewString("hi"), &s))
	require.Equal(t, "hi", s)
}

func TestIntoSliceAndMap(t *testing.T) {
	doc, err := Deserialize("- 1\n- 2\n- 3\n")
	require.NoError(t, err)

	var ints []int
	require.NoError(t, Into(doc, &ints))
	require.Equal(t, []int{1, 2, 3}, ints)

	doc, err = Deserialize("a: 1\nb: 2\n")
	require.NoError(t, err)
	var m map[string]int
	require.NoError(t, Into(doc, &m))
	require.Equal(t, map[string]int{"a": 1, "b": 2}, m)
}

func TestIntoInterfaceProducesDynamicValue(t *testing.T) {
	doc, err := Deserialize("a: [1, two, true]\n")
	require.NoError(t, err)
	var v interface{}
	require.NoError(t, Into(doc, &v))
	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{int64(1), "two", true}, m["a"])
}

func TestIntoRequiresNonNilPointer(t *testing.T) {
	var i int
	err := Into(NewInt(1), i)
	require.Error(t, err)
	var yerr *Error
	require.ErrorAs(t, err, &yerr)
	require.Equal(t, InvalidUsage, yerr.Kind)
}

func TestIntoNegativeIntoUnsignedFails(t *testing.T) {
	var u uint
	err := Into(NewInt(-1), &u)
	require.Error(t, err)
}

func TestFromBuiltinValues(t *testing.T) {
	n, err := From(42)
	require.NoError(t, err)
	require.Equal(t, IntKind, n.Kind())

	n, err = From([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, SequenceKind, n.Kind())
	size, _ := n.Size()
	require.Equal(t, 3, size)

	n, err = From(map[string]int{"a": 1})
	require.NoError(t, err)
	require.Equal(t, MappingKind, n.Kind())
}

func TestFromNodeRoundTrip(t *testing.T) {
	n, err := From([]string{"a", "b"})
	require.NoError(t, err)
	var out []string
	require.NoError(t, Into(n, &out))
	require.Equal(t, []string{"a", "b"}, out)
}

// fromNoderType implements FromNoder to verify the customization
// hook takes priority over the built-in reflection conversions.
type fromNoderType struct{ called bool }

func (f *fromNoderType) FromNode(n *Node) error {
	f.called = true
	return nil
}

func TestIntoUsesFromNoderWhenImplemented(t *testing.T) {
	var target fromNoderType
	require.NoError(t, Into(NewInt(1), &target))
	require.True(t, target.called)
}

// TestIntoInterfaceNestedStructure exercises a deeply nested dynamic decode
// where a diff on mismatch is more useful than a flat equality failure.
func TestIntoInterfaceNestedStructure(t *testing.T) {
	doc, err := Deserialize("people:\n  - name: ada\n    tags: [math, logic]\n  - name: alan\n    tags: [computing]\n")
	require.NoError(t, err)

	var v interface{}
	require.NoError(t, Into(doc, &v))

	want := map[string]interface{}{
		"people": []interface{}{
			map[string]interface{}{"name": "ada", "tags": []interface{}{"math", "logic"}},
			map[string]interface{}{"name": "alan", "tags": []interface{}{"computing"}},
		},
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Fatalf("decoded value mismatch (-want +got):\n%s", diff)
	}
}

package yamlcore

import (
	"github.com/yamlcore-go/yamlcore/internal/tree"
)

// Kind identifies which of the seven node kinds a Node currently holds
// (spec.md §3/§4.4).
type Kind = tree.Kind

const (
	SequenceKind Kind = tree.SequenceKind
	MappingKind  Kind = tree.MappingKind
	NullKind     Kind = tree.NullKind
	BoolKind     Kind = tree.BoolKind
	IntKind      Kind = tree.IntKind
	FloatKind    Kind = tree.FloatKind
	StringKind   Kind = tree.StringKind
)

// Style selects block or flow emission for a container node.
type Style = tree.Style

const (
	BlockStyle Style = tree.BlockStyle
	FlowStyle  Style = tree.FlowStyle
)

// AnchorState records whether a node defines an anchor, resolves an alias,
// or carries neither.
type AnchorState = tree.AnchorState

const (
	NoAnchor         AnchorState = tree.NoAnchor
	AnchorDefining   AnchorState = tree.AnchorDefining
	AliasReferencing AnchorState = tree.AliasReferencing
)

// Version selects the YAML core-schema variant a node was resolved under.
type Version = tree.Version

const (
	V1_2 Version = tree.V1_2
	V1_1 Version = tree.V1_1
)

// Node is a single value in a parsed or hand-built document tree: one of
// Sequence, Mapping, Null, Boolean, Integer, Float, or String, plus tag,
// anchor, and style metadata (spec.md §3). It wraps the internal tree
// representation so that accessor errors surface as the package's single
// public Error type instead of an internal one.
type Node struct {
	t *tree.Node
}

func wrapNode(t *tree.Node) *Node {
	if t == nil {
		return nil
	}
	return &Node{t}
}

func unwrapNode(n *Node) *tree.Node {
	if n == nil {
		return nil
	}
	return n.t
}

// NewNull constructs a null-kind node.
func NewNull() *Node { return wrapNode(tree.NewNull()) }

// NewBool constructs a boolean-kind node.
func NewBool(b bool) *Node { return wrapNode(tree.NewBool(b)) }

// NewInt constructs an integer-kind node.
func NewInt(i int64) *Node { return wrapNode(tree.NewInt(i)) }

// NewFloat constructs a float-kind node.
func NewFloat(f float64) *Node { return wrapNode(tree.NewFloat(f)) }

// NewString constructs a string-kind node; the bytes of s are copied.
func NewString(s string) *Node { return wrapNode(tree.NewString(s)) }

// NewSequence constructs a sequence-kind node from items, in order.
func NewSequence(items []*Node) *Node {
	inner := make([]*tree.Node, len(items))
	for i, it := range items {
		inner[i] = unwrapNode(it)
	}
	return wrapNode(tree.NewSequence(inner))
}

// Pair is one (key, value) entry of a mapping, in insertion order.
type Pair struct {
	Key   *Node
	Value *Node
}

// NewMapping constructs a mapping-kind node from pairs, in insertion
// order.
func NewMapping(pairs []Pair) *Node {
	inner := make([]tree.Pair, len(pairs))
	for i, p := range pairs {
		inner[i] = tree.Pair{Key: unwrapNode(p.Key), Value: unwrapNode(p.Value)}
	}
	return wrapNode(tree.NewMapping(inner))
}

// NewFromPairs implements spec.md §4.4's "construct from initializer of
// pairs": if every element of elements is itself a two-element sequence
// node whose first element is a scalar unique among first elements, the
// result is a mapping; otherwise the result is a sequence of elements.
func NewFromPairs(elements []*Node) *Node {
	inner := make([]*tree.Node, len(elements))
	for i, e := range elements {
		inner[i] = unwrapNode(e)
	}
	return wrapNode(tree.NewFromPairs(inner))
}

// Kind returns n's current kind. It never fails.
func (n *Node) Kind() Kind { return n.t.Kind() }

// Tag returns n's explicit tag, if any was set by a document's author or
// by SetTag. It fails with NotFound if none was set.
func (n *Node) Tag() (string, error) {
	tag, err := n.t.Tag()
	return tag, wrapError(err)
}

// SetTag attaches an explicit tag to n.
func (n *Node) SetTag(tag string) { n.t.SetTag(tag) }

// Style reports whether n, a container, renders in block or flow style.
func (n *Node) Style() Style { return n.t.Style() }

// SetStyle sets n's container emission style.
func (n *Node) SetStyle(s Style) { n.t.SetStyle(s) }

// NodeVersion reports the YAML core-schema version n was resolved under.
func (n *Node) NodeVersion() Version { return n.t.Version() }

// SetNodeVersion sets the YAML core-schema version associated with n.
func (n *Node) SetNodeVersion(v Version) { n.t.SetVersion(v) }

// AnchorState reports whether n defines an anchor, resolves an alias, or
// carries neither.
func (n *Node) AnchorState() AnchorState { return n.t.AnchorState() }

// AnchorName returns the anchor name n defines or resolves, failing with
// NotFound if n carries no anchor metadata.
func (n *Node) AnchorName() (string, error) {
	name, err := n.t.AnchorName()
	return name, wrapError(err)
}

// SetAnchor marks n as defining the given anchor name.
func (n *Node) SetAnchor(name string) { n.t.SetAnchor(name) }

// AliasOf returns a node that serializes as an alias to target, which must
// already carry an anchor name (spec.md §4.4's alias_of).
func AliasOf(target *Node) (*Node, error) {
	t, err := tree.AliasOf(unwrapNode(target))
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapNode(t), nil
}

// Bool returns n's boolean value, failing with TypeError if n is not
// BoolKind.
func (n *Node) Bool() (bool, error) {
	v, err := n.t.Bool()
	return v, wrapError(err)
}

// Int returns n's value widened/narrowed to int64, per spec.md §4.4's
// numeric conversion contract.
func (n *Node) Int() (int64, error) {
	v, err := n.t.Int()
	return v, wrapError(err)
}

// Float returns n's value widened to float64.
func (n *Node) Float() (float64, error) {
	v, err := n.t.Float()
	return v, wrapError(err)
}

// String returns n's string value, failing with TypeError if n is not
// StringKind.
func (n *Node) String() (string, error) {
	v, err := n.t.String()
	return v, wrapError(err)
}

// IsNull reports whether n is NullKind.
func (n *Node) IsNull() bool { return n.t.IsNull() }

// At returns the element at index i of a sequence node.
func (n *Node) At(i int) (*Node, error) {
	v, err := n.t.At(i)
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapNode(v), nil
}

// Append adds v to the end of a sequence node.
func (n *Node) Append(v *Node) error {
	return wrapError(n.t.Append(unwrapNode(v)))
}

// Get performs a read-only lookup by key in a mapping node, failing with
// OutOfRange if key is absent.
func (n *Node) Get(key *Node) (*Node, error) {
	v, err := n.t.Get(unwrapNode(key))
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapNode(v), nil
}

// GetOrInsert performs a writable lookup by key in a mapping node,
// inserting a null child if key is absent.
func (n *Node) GetOrInsert(key *Node) (*Node, error) {
	v, err := n.t.GetOrInsert(unwrapNode(key))
	if err != nil {
		return nil, wrapError(err)
	}
	return wrapNode(v), nil
}

// Contains reports whether a mapping node has key; it never fails, and
// returns false for non-mapping kinds.
func (n *Node) Contains(key *Node) bool { return n.t.Contains(unwrapNode(key)) }

// Size returns the element count of a sequence, mapping, or string node.
func (n *Node) Size() (int, error) {
	v, err := n.t.Size()
	return v, wrapError(err)
}

// Empty reports whether Size is zero.
func (n *Node) Empty() (bool, error) {
	v, err := n.t.Empty()
	return v, wrapError(err)
}

// Seq returns a sequence node's elements in insertion order.
func (n *Node) Seq() ([]*Node, error) {
	inner, err := n.t.Seq()
	if err != nil {
		return nil, wrapError(err)
	}
	out := make([]*Node, len(inner))
	for i, c := range inner {
		out[i] = wrapNode(c)
	}
	return out, nil
}

// Pairs returns a mapping node's (key, value) pairs in insertion order.
func (n *Node) Pairs() ([]Pair, error) {
	inner, err := n.t.Pairs()
	if err != nil {
		return nil, wrapError(err)
	}
	out := make([]Pair, len(inner))
	for i, p := range inner {
		out[i] = Pair{Key: wrapNode(p.Key), Value: wrapNode(p.Value)}
	}
	return out, nil
}

// Equal reports whether a and b have the same value: same kind and equal
// scalar value, same-length sequences with pairwise-equal elements, or
// same-size mappings with the same key/value pairs regardless of
// insertion order. Tags, anchors, and styles do not participate.
func Equal(a, b *Node) bool { return tree.Equal(unwrapNode(a), unwrapNode(b)) }

// DeepCopy returns a node sharing no structure with n.
func (n *Node) DeepCopy() *Node { return wrapNode(n.t.DeepCopy()) }

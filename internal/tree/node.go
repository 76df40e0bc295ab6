// Package tree implements the Node model (spec.md §4.4): the seven-kind
// tagged union every deserialized document is built from, plus the
// accessor, conversion, and container operations defined on it.
//
// The concrete type lives here, in an internal package, rather than at the
// module root, so that internal/parse can construct trees directly without
// the root package importing the parser (which would be a cycle, since the
// root package's Deserialize forwards into internal/parse). The root
// package wraps this type in its own Node struct so that accessor errors
// surface as the package's public Error type.
package tree

import "fmt"

// Kind is the tag of the Node union.
type Kind uint8

const (
	SequenceKind Kind = iota
	MappingKind
	NullKind
	BoolKind
	IntKind
	FloatKind
	StringKind
)

func (k Kind) String() string {
	switch k {
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case StringKind:
		return "string"
	}
	return "unknown"
}

// AnchorState records whether a node defines an anchor, was produced by
// resolving an alias, or carries no anchor metadata at all.
type AnchorState uint8

const (
	NoAnchor AnchorState = iota
	AnchorDefining
	AliasReferencing
)

// Style selects block or flow emission for container nodes.
type Style uint8

const (
	BlockStyle Style = iota
	FlowStyle
)

// Version selects the YAML core-schema variant a node (or the document it
// came from) was resolved under.
type Version uint8

const (
	V1_2 Version = iota
	V1_1
)

// Node is the tagged-union value spec.md §3 describes: exactly one of the
// scalar payload fields or one of the container payload fields is
// meaningful, depending on kind.
type Node struct {
	kind       Kind
	tag        string
	anchor     AnchorState
	anchorName string
	style      Style
	version    Version

	str     string
	boolean bool
	integer int64
	float   float64

	seq   []*Node
	pairs []Pair
}

// Pair is one (key, value) entry of a MappingKind node, in insertion
// order.
type Pair struct {
	Key   *Node
	Value *Node
}

// Error is a node-accessor failure: type-error, out-of-range, invalid-usage,
// or not-found, per spec.md §7's taxonomy for in-tree operations (as
// opposed to parse/serialize errors, which carry byte positions instead).
type Error struct {
	Kind string
	Msg  string
}

func (e *Error) Error() string       { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }
func (e *Error) ErrorKind() string   { return e.Kind }

func typeError(want Kind, got Kind) error {
	return &Error{Kind: "type-error", Msg: fmt.Sprintf("expected %s, got %s", want, got)}
}

// --- construction ---

func NewNull() *Node { return &Node{kind: NullKind} }

func NewBool(b bool) *Node { return &Node{kind: BoolKind, boolean: b} }

func NewInt(i int64) *Node { return &Node{kind: IntKind, integer: i} }

func NewFloat(f float64) *Node { return &Node{kind: FloatKind, float: f} }

func NewString(s string) *Node { return &Node{kind: StringKind, str: s} }

func NewSequence(items []*Node) *Node {
	return &Node{kind: SequenceKind, seq: items}
}

func NewMapping(pairs []Pair) *Node {
	return &Node{kind: MappingKind, pairs: pairs}
}

// NewFromPairs implements spec.md §4.4's "construct from initializer of
// pairs" contract: if every element is a two-element sequence whose first
// element is a scalar unique among first elements, the result is a
// mapping; otherwise it is a sequence of the elements as given.
func NewFromPairs(elements []*Node) *Node {
	seen := make(map[string]bool, len(elements))
	for _, el := range elements {
		if el.kind != SequenceKind || len(el.seq) != 2 {
			return NewSequence(elements)
		}
		k := el.seq[0]
		if !isScalarKind(k.kind) {
			return NewSequence(elements)
		}
		key := scalarIdentity(k)
		if seen[key] {
			return NewSequence(elements)
		}
		seen[key] = true
	}
	pairs := make([]Pair, len(elements))
	for i, el := range elements {
		pairs[i] = Pair{Key: el.seq[0], Value: el.seq[1]}
	}
	return NewMapping(pairs)
}

func isScalarKind(k Kind) bool {
	switch k {
	case NullKind, BoolKind, IntKind, FloatKind, StringKind:
		return true
	}
	return false
}

func scalarIdentity(n *Node) string {
	switch n.kind {
	case NullKind:
		return "null:"
	case BoolKind:
		return fmt.Sprintf("bool:%v", n.boolean)
	case IntKind:
		return fmt.Sprintf("int:%d", n.integer)
	case FloatKind:
		return fmt.Sprintf("float:%v", n.float)
	case StringKind:
		return "string:" + n.str
	}
	return ""
}

// --- kind / metadata ---

func (n *Node) Kind() Kind { return n.kind }

func (n *Node) Tag() (string, error) {
	if n.tag == "" {
		return "", &Error{Kind: "not-found", Msg: "node has no tag set"}
	}
	return n.tag, nil
}

func (n *Node) SetTag(tag string) { n.tag = tag }

// RawTag returns the tag whether or not it has been set, for internal use
// by the serializer (which needs to distinguish "no tag" from "tag is the
// empty string", impossible for a YAML tag, so this is unambiguous).
func (n *Node) RawTag() string { return n.tag }

func (n *Node) Style() Style         { return n.style }
func (n *Node) SetStyle(s Style)     { n.style = s }
func (n *Node) Version() Version     { return n.version }
func (n *Node) SetVersion(v Version) { n.version = v }

func (n *Node) AnchorState() AnchorState { return n.anchor }

func (n *Node) AnchorName() (string, error) {
	if n.anchor == NoAnchor {
		return "", &Error{Kind: "not-found", Msg: "node has no anchor set"}
	}
	return n.anchorName, nil
}

func (n *Node) SetAnchor(name string) {
	n.anchor = AnchorDefining
	n.anchorName = name
}

// AliasOf implements spec.md §4.4's alias_of: target must already carry an
// anchor name.
func AliasOf(target *Node) (*Node, error) {
	if target.anchor == NoAnchor {
		return nil, &Error{Kind: "invalid-usage", Msg: "alias_of requires the target node to already have an anchor"}
	}
	alias := target.DeepCopy()
	alias.anchor = AliasReferencing
	alias.anchorName = target.anchorName
	return alias, nil
}

// --- scalar accessors ---

func (n *Node) Bool() (bool, error) {
	if n.kind != BoolKind {
		return false, typeError(BoolKind, n.kind)
	}
	return n.boolean, nil
}

func (n *Node) Int() (int64, error) {
	switch n.kind {
	case IntKind:
		return n.integer, nil
	case FloatKind:
		return int64(n.float), nil
	case BoolKind:
		if n.boolean {
			return 1, nil
		}
		return 0, nil
	}
	return 0, typeError(IntKind, n.kind)
}

func (n *Node) Float() (float64, error) {
	switch n.kind {
	case FloatKind:
		return n.float, nil
	case IntKind:
		return float64(n.integer), nil
	case BoolKind:
		if n.boolean {
			return 1, nil
		}
		return 0, nil
	}
	return 0, typeError(FloatKind, n.kind)
}

func (n *Node) String() (string, error) {
	if n.kind != StringKind {
		return "", typeError(StringKind, n.kind)
	}
	return n.str, nil
}

func (n *Node) IsNull() bool { return n.kind == NullKind }

// --- containers ---

func (n *Node) At(i int) (*Node, error) {
	if n.kind != SequenceKind {
		return nil, typeError(SequenceKind, n.kind)
	}
	if i < 0 || i >= len(n.seq) {
		return nil, &Error{Kind: "out-of-range", Msg: fmt.Sprintf("index %d out of range for sequence of length %d", i, len(n.seq))}
	}
	return n.seq[i], nil
}

func (n *Node) Append(v *Node) error {
	if n.kind != SequenceKind {
		return typeError(SequenceKind, n.kind)
	}
	n.seq = append(n.seq, v)
	return nil
}

// Get implements spec.md §4.4's read-only subscript by key: missing keys
// fail out-of-range.
func (n *Node) Get(key *Node) (*Node, error) {
	if n.kind != MappingKind {
		return nil, typeError(MappingKind, n.kind)
	}
	for _, p := range n.pairs {
		if Equal(p.Key, key) {
			return p.Value, nil
		}
	}
	return nil, &Error{Kind: "out-of-range", Msg: "key not found in mapping"}
}

// GetOrInsert implements the writable-subscript half of spec.md §4.4: a
// missing key inserts a null child and returns it.
func (n *Node) GetOrInsert(key *Node) (*Node, error) {
	if n.kind != MappingKind {
		return nil, typeError(MappingKind, n.kind)
	}
	for _, p := range n.pairs {
		if Equal(p.Key, key) {
			return p.Value, nil
		}
	}
	v := NewNull()
	n.pairs = append(n.pairs, Pair{Key: key, Value: v})
	return v, nil
}

func (n *Node) Contains(key *Node) bool {
	if n.kind != MappingKind {
		return false
	}
	for _, p := range n.pairs {
		if Equal(p.Key, key) {
			return true
		}
	}
	return false
}

func (n *Node) Size() (int, error) {
	switch n.kind {
	case SequenceKind:
		return len(n.seq), nil
	case MappingKind:
		return len(n.pairs), nil
	case StringKind:
		return len(n.str), nil
	}
	return 0, typeError(SequenceKind, n.kind)
}

func (n *Node) Empty() (bool, error) {
	size, err := n.Size()
	if err != nil {
		return false, err
	}
	return size == 0, nil
}

// Seq returns the child sequence in insertion order; fails for non-sequence
// kinds.
func (n *Node) Seq() ([]*Node, error) {
	if n.kind != SequenceKind {
		return nil, typeError(SequenceKind, n.kind)
	}
	return n.seq, nil
}

// Pairs returns the mapping's (key, value) pairs in insertion order; fails
// for non-mapping kinds.
func (n *Node) Pairs() ([]Pair, error) {
	if n.kind != MappingKind {
		return nil, typeError(MappingKind, n.kind)
	}
	return n.pairs, nil
}

// --- equality / deep copy ---

// Equal implements the value equality spec.md §3 requires for key
// comparison and duplicate-key detection: same kind and same scalar value,
// or same-length containers with pairwise-equal elements. Tags, anchors,
// and styles are metadata and do not participate.
func Equal(a, b *Node) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NullKind:
		return true
	case BoolKind:
		return a.boolean == b.boolean
	case IntKind:
		return a.integer == b.integer
	case FloatKind:
		return a.float == b.float
	case StringKind:
		return a.str == b.str
	case SequenceKind:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case MappingKind:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for _, ap := range a.pairs {
			bv, err := b.Get(ap.Key)
			if err != nil || !Equal(ap.Value, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// DeepCopy returns a node with no structure shared with n, the semantics
// spec.md §3/§9 requires for alias resolution.
func (n *Node) DeepCopy() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.anchor = NoAnchor
	cp.anchorName = ""
	if n.seq != nil {
		cp.seq = make([]*Node, len(n.seq))
		for i, c := range n.seq {
			cp.seq[i] = c.DeepCopy()
		}
	}
	if n.pairs != nil {
		cp.pairs = make([]Pair, len(n.pairs))
		for i, p := range n.pairs {
			cp.pairs[i] = Pair{Key: p.Key.DeepCopy(), Value: p.Value.DeepCopy()}
		}
	}
	return &cp
}

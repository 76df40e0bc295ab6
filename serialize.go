package yamlcore

import (
	"io"
	"strings"

	"github.com/yamlcore-go/yamlcore/internal/emit"
	"github.com/yamlcore-go/yamlcore/internal/tree"
)

// SerializeDocs writes every node in docs to w as a multi-document YAML
// stream, the inverse of DeserializeDocs (spec.md §4.4).
func SerializeDocs(w io.Writer, docs []*Node, opts ...Option) error {
	cfg := applyOptions(opts)
	inner := make([]*tree.Node, len(docs))
	for i, d := range docs {
		inner[i] = unwrapNode(d)
	}
	return emit.SerializeDocs(w, inner, cfg.emitOptions())
}

// Serialize writes n to w as a single YAML document, the inverse of
// Deserialize.
func Serialize(w io.Writer, n *Node, opts ...Option) error {
	return SerializeDocs(w, []*Node{n}, opts...)
}

// SerializeDocsString is the string-returning convenience form of
// SerializeDocs.
func SerializeDocsString(docs []*Node, opts ...Option) (string, error) {
	var b strings.Builder
	if err := SerializeDocs(&b, docs, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SerializeString is the string-returning convenience form of Serialize.
func SerializeString(n *Node, opts ...Option) (string, error) {
	return SerializeDocsString([]*Node{n}, opts...)
}

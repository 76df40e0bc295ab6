package yamlcore

import (
	"io"

	"github.com/yamlcore-go/yamlcore/internal/classify"
	"github.com/yamlcore-go/yamlcore/internal/parse"
	"github.com/yamlcore-go/yamlcore/internal/srcenc"
)

// DeserializeDocs parses every document in src, in source order, per
// spec.md §4.4's deserialize_docs. An empty input yields an empty, non-nil
// slice. src may be an io.Reader, a []byte, or a string (the three
// byte-source shapes spec.md §6 names minus the pull-iterator form, which
// io.Reader already generalizes in Go).
func DeserializeDocs(src interface{}, opts ...Option) ([]*Node, error) {
	raw, err := readSource(src)
	if err != nil {
		return nil, err
	}
	cfg := applyOptions(opts)

	buf, _, err := srcenc.DecodeBytes(raw)
	if err != nil {
		return nil, wrapError(err)
	}

	p := parse.New(buf)
	p.SetDefaultVersion(toClassifyVersion(cfg.version))
	docs, err := p.ParseStream()
	if err != nil {
		return nil, wrapError(err)
	}

	out := make([]*Node, len(docs))
	for i, d := range docs {
		out[i] = wrapNode(d)
	}
	return out, nil
}

// Deserialize parses src as a single document, failing if it contains zero
// or more than one document.
func Deserialize(src interface{}, opts ...Option) (*Node, error) {
	docs, err := DeserializeDocs(src, opts...)
	if err != nil {
		return nil, err
	}
	switch len(docs) {
	case 0:
		return nil, &Error{Kind: InvalidUsage, Msg: "source contains no documents"}
	case 1:
		return docs[0], nil
	default:
		return nil, &Error{Kind: InvalidUsage, Msg: "source contains more than one document"}
	}
}

func readSource(src interface{}) ([]byte, error) {
	switch v := src.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case io.Reader:
		return io.ReadAll(v)
	default:
		return nil, &Error{Kind: InvalidUsage, Msg: "unsupported source type; expected []byte, string, or io.Reader"}
	}
}

// toClassifyVersion bridges tree.Version (the public API's Version, used
// by WithVersion) and classify.Version (what internal/parse's scalar
// classifier needs) — two packages that don't import each other.
func toClassifyVersion(v Version) classify.Version {
	if v == V1_1 {
		return classify.V1_1
	}
	return classify.V1_2
}

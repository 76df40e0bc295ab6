// Package emit implements the serializer (spec.md §4.5): it renders a Node
// tree back to canonical YAML text.
//
// Grounded on WillAbides-yaml's internal/emitter/{emit,write,analyze}.go.
// analyzeScalar's block/flow-indicator and special-character detection is
// adapted directly into canPlain/hasNonPrintable/renderString below — it already
// implements the plain/single/double-quote decision tree spec.md §4.5
// describes. write.go's column-tracking writer is simplified here to a
// line-buffer-per-call style, since this engine does not support the
// teacher's incremental/streaming emit API (the whole tree is available
// up front).
package emit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yamlcore-go/yamlcore/internal/escape"
	"github.com/yamlcore-go/yamlcore/internal/tree"
)

// Options controls emission layout.
type Options struct {
	IndentWidth     int
	ExplicitStart   bool
	ExplicitEnd     bool
}

func (o Options) indentWidth() int {
	if o.IndentWidth <= 0 {
		return 2
	}
	return o.IndentWidth
}

const tagPrefix = "tag:yaml.org,2002:"
const binaryTag = tagPrefix + "binary"

func defaultTag(k tree.Kind) string {
	switch k {
	case tree.NullKind:
		return tagPrefix + "null"
	case tree.BoolKind:
		return tagPrefix + "bool"
	case tree.IntKind:
		return tagPrefix + "int"
	case tree.FloatKind:
		return tagPrefix + "float"
	case tree.StringKind:
		return tagPrefix + "str"
	case tree.SequenceKind:
		return tagPrefix + "seq"
	case tree.MappingKind:
		return tagPrefix + "map"
	}
	return ""
}

// SerializeDocs writes every document in docs to w, separated per spec.md
// §4.5's multi-document rule.
func SerializeDocs(w io.Writer, docs []*tree.Node, opts Options) error {
	multi := len(docs) > 1
	for i, doc := range docs {
		if multi || opts.ExplicitStart || i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		s := &serializer{w: w, opts: opts}
		if err := s.writeNode(doc, 0, false, true); err != nil {
			return err
		}
		if !s.wroteNewline {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if multi || opts.ExplicitEnd {
			if _, err := io.WriteString(w, "...\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

type serializer struct {
	w            io.Writer
	opts         Options
	wroteNewline bool
}

func (s *serializer) write(str string) error {
	_, err := io.WriteString(s.w, str)
	if err == nil {
		s.wroteNewline = strings.HasSuffix(str, "\n")
	}
	return err
}

// writeNode emits n. indent is the column at which a freshly started line
// of n's content should be indented; atLineStart indicates whether the
// cursor is already at that column (so no indent text is needed before
// writing). inFlow forces flow-style rendering regardless of n's own Style
// bit, since block structures cannot nest inside a flow collection.
func (s *serializer) writeNode(n *tree.Node, indent int, inFlow bool, atLineStart bool) error {
	if err := s.writeAnchorPrefix(n); err != nil {
		return err
	}
	if n.AnchorState() == tree.AliasReferencing {
		name, _ := n.AnchorName()
		return s.write("*" + name)
	}
	if err := s.writeTagPrefix(n); err != nil {
		return err
	}

	switch n.Kind() {
	case tree.NullKind, tree.BoolKind, tree.IntKind, tree.FloatKind, tree.StringKind:
		return s.write(scalarText(n))
	case tree.SequenceKind:
		seq, _ := n.Seq()
		if inFlow || n.Style() == tree.FlowStyle {
			return s.writeFlowSequence(seq, indent)
		}
		return s.writeBlockSequence(seq, indent, atLineStart)
	case tree.MappingKind:
		pairs, _ := n.Pairs()
		if inFlow || n.Style() == tree.FlowStyle {
			return s.writeFlowMapping(pairs, indent)
		}
		return s.writeBlockMapping(pairs, indent, atLineStart)
	}
	return fmt.Errorf("emit: unknown node kind %v", n.Kind())
}

func (s *serializer) writeAnchorPrefix(n *tree.Node) error {
	if n.AnchorState() != tree.AnchorDefining {
		return nil
	}
	name, _ := n.AnchorName()
	return s.write("&" + name + " ")
}

func (s *serializer) writeTagPrefix(n *tree.Node) error {
	tag := n.RawTag()
	if tag == "" || tag == defaultTag(n.Kind()) {
		return nil
	}
	return s.write(renderTag(tag) + " ")
}

func renderTag(tag string) string {
	if strings.HasPrefix(tag, tagPrefix) {
		return "!!" + tag[len(tagPrefix):]
	}
	if strings.HasPrefix(tag, "!") {
		return tag
	}
	return "!<" + tag + ">"
}

func (s *serializer) writeBlockSequence(items []*tree.Node, indent int, atLineStart bool) error {
	if len(items) == 0 {
		return s.write("[]")
	}
	pad := strings.Repeat(" ", indent)
	for i, item := range items {
		if i > 0 || !atLineStart {
			if err := s.write("\n" + pad); err != nil {
				return err
			}
		}
		if err := s.write("- "); err != nil {
			return err
		}
		childIndent := indent + s.opts.indentWidth()
		if err := s.writeNode(item, childIndent, false, false); err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) writeBlockMapping(pairs []tree.Pair, indent int, atLineStart bool) error {
	if len(pairs) == 0 {
		return s.write("{}")
	}
	pad := strings.Repeat(" ", indent)
	for i, p := range pairs {
		if i > 0 || !atLineStart {
			if err := s.write("\n" + pad); err != nil {
				return err
			}
		}
		if err := s.writeNode(p.Key, indent, false, false); err != nil {
			return err
		}
		if err := s.write(":"); err != nil {
			return err
		}
		childIndent := indent + s.opts.indentWidth()
		if isContainer(p.Value) && !isEmptyContainer(p.Value) && p.Value.Style() != tree.FlowStyle {
			if err := s.writeNode(p.Value, childIndent, false, false); err != nil {
				return err
			}
		} else {
			if err := s.write(" "); err != nil {
				return err
			}
			if err := s.writeNode(p.Value, childIndent, false, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func isContainer(n *tree.Node) bool {
	return n.Kind() == tree.SequenceKind || n.Kind() == tree.MappingKind
}

func isEmptyContainer(n *tree.Node) bool {
	empty, err := n.Empty()
	return err == nil && empty
}

func (s *serializer) writeFlowSequence(items []*tree.Node, indent int) error {
	if err := s.write("["); err != nil {
		return err
	}
	for i, item := range items {
		if i > 0 {
			if err := s.write(", "); err != nil {
				return err
			}
		}
		if err := s.writeNode(item, indent, true, true); err != nil {
			return err
		}
	}
	return s.write("]")
}

func (s *serializer) writeFlowMapping(pairs []tree.Pair, indent int) error {
	if err := s.write("{"); err != nil {
		return err
	}
	for i, p := range pairs {
		if i > 0 {
			if err := s.write(", "); err != nil {
				return err
			}
		}
		if err := s.writeNode(p.Key, indent, true, true); err != nil {
			return err
		}
		if err := s.write(": "); err != nil {
			return err
		}
		if err := s.writeNode(p.Value, indent, true, true); err != nil {
			return err
		}
	}
	return s.write("}")
}

// scalarText renders a scalar node's canonical plain/quoted form.
func scalarText(n *tree.Node) string {
	switch n.Kind() {
	case tree.NullKind:
		return "null"
	case tree.BoolKind:
		v, _ := n.Bool()
		if v {
			return "true"
		}
		return "false"
	case tree.IntKind:
		v, _ := n.Int()
		return strconv.FormatInt(v, 10)
	case tree.FloatKind:
		v, _ := n.Float()
		switch {
		case math.IsInf(v, 1):
			return ".inf"
		case math.IsInf(v, -1):
			return "-.inf"
		case math.IsNaN(v):
			return ".nan"
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	case tree.StringKind:
		v, _ := n.String()
		if n.RawTag() == binaryTag {
			v = base64.StdEncoding.EncodeToString([]byte(v))
		}
		return renderString(v)
	}
	return ""
}

// renderString implements spec.md §4.5's string style-selection rule:
// plain if safe and unambiguous, double-quoted if the value contains
// non-printable bytes, otherwise single-quoted.
func renderString(v string) string {
	if canPlain(v) {
		return v
	}
	// A single-quoted scalar folds an embedded line break to a space on
	// re-parse (spec.md §4.2), so any value containing one must go out
	// double-quoted instead, where \n survives as a literal escape.
	if hasNonPrintable(v) || strings.Contains(v, "\n") {
		return renderDoubleQuoted(v)
	}
	return renderSingleQuoted(v)
}

func canPlain(v string) bool {
	if v == "" {
		return false
	}
	if strings.HasPrefix(v, " ") || strings.HasSuffix(v, " ") {
		return false
	}
	if strings.HasPrefix(v, "---") || strings.HasPrefix(v, "...") {
		return false
	}
	first := v[0]
	switch first {
	case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`', '?', ':', '-':
		return false
	}
	if strings.ContainsAny(v, "\n\t") {
		return false
	}
	if strings.Contains(v, ": ") || strings.HasSuffix(v, ":") {
		return false
	}
	if strings.Contains(v, " #") {
		return false
	}
	if hasNonPrintable(v) {
		return false
	}
	// Reject values that would be reclassified as a non-string kind,
	// making the round trip lossy under the core-schema scalar scanner
	// (spec.md §4.2).
	if looksLikeOtherKind(v) {
		return false
	}
	return true
}

func looksLikeOtherKind(v string) bool {
	switch v {
	case "~", "null", "Null", "NULL", "true", "True", "TRUE", "false", "False", "FALSE",
		"y", "Y", "yes", "Yes", "YES", "n", "N", "no", "No", "NO", "on", "On", "ON", "off", "Off", "OFF":
		return true
	}
	if v == "" {
		return true
	}
	c := v[0]
	if c == '+' || c == '-' || (c >= '0' && c <= '9') || c == '.' {
		return true
	}
	return false
}

func hasNonPrintable(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c < 0x20 && c != '\n' {
			return true
		}
		if c == 0x7F {
			return true
		}
	}
	return false
}

func renderSingleQuoted(v string) string {
	var b bytes.Buffer
	b.WriteByte('\'')
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' {
			b.WriteString("''")
		} else {
			b.WriteByte(v[i])
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func renderDoubleQuoted(v string) string {
	var b bytes.Buffer
	b.WriteByte('"')
	for i := 0; i < len(v); i++ {
		c := v[i]
		if esc, ok := escape.EmitTable[c]; ok {
			b.WriteString(esc)
			continue
		}
		if c < 0x20 || c == 0x7F {
			b.WriteString(escape.EmitControl(c))
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

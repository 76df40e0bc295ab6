// Package parse implements the deserializer (spec.md §4.3): it consumes a
// lexer's token stream and builds the Node tree, resolving tags, anchors,
// and aliases along the way.
//
// Grounded on WillAbides-yaml's internal/parserc/parserc.go state machine
// (yaml_parser_state_machine and the parse_block_sequence_entry /
// parse_block_mapping_key / parse_flow_* family) and decode.go's unexported
// parser/Composer (node/scalar/sequence/mapping/alias methods), collapsed
// from the teacher's three-stage token→event→compose pipeline into a
// single token→tree pass, per SPEC_FULL.md §4.3.
package parse

import (
	"fmt"

	"github.com/yamlcore-go/yamlcore/internal/classify"
	"github.com/yamlcore-go/yamlcore/internal/lexer"
	"github.com/yamlcore-go/yamlcore/internal/token"
	"github.com/yamlcore-go/yamlcore/internal/tree"
)

// Error is a deserializer failure carrying the position taxonomy spec.md
// §7 requires.
type Error struct {
	Kind string
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Pos) }
func (e *Error) ErrorKind() string        { return e.Kind }
func (e *Error) ErrorPos() token.Position { return e.Pos }

func errAt(kind string, pos token.Position, format string, args ...interface{}) error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

const defaultTagPrefix = "tag:yaml.org,2002:"

// Parser turns a token stream into a sequence of document trees.
type Parser struct {
	lex      *lexer.Lexer
	buffered *token.Token

	version        classify.Version
	defaultVersion classify.Version
	tagDirs        map[string]string
	anchors        map[string]*tree.Node
}

// New constructs a Parser over buf, a UTF-8 buffer as produced by
// internal/srcenc. The default core-schema version is 1.2 until a %YAML
// directive or SetDefaultVersion says otherwise.
func New(buf []byte) *Parser {
	return &Parser{lex: lexer.New(buf), defaultVersion: classify.V1_2}
}

// SetDefaultVersion overrides the core-schema version assumed for
// documents that carry no %YAML directive of their own.
func (p *Parser) SetDefaultVersion(v classify.Version) { p.defaultVersion = v }

func (p *Parser) peek() (token.Token, error) {
	if p.buffered != nil {
		return *p.buffered, nil
	}
	t, err := p.lex.Next()
	if err != nil {
		return token.Token{}, err
	}
	p.buffered = &t
	return t, nil
}

func (p *Parser) next() (token.Token, error) {
	t, err := p.peek()
	if err != nil {
		return token.Token{}, err
	}
	p.buffered = nil
	return t, nil
}

// ParseStream parses every document in the buffer, in source order,
// implementing spec.md §4.3's deserialize_docs.
func (p *Parser) ParseStream() ([]*tree.Node, error) {
	var docs []*tree.Node
	for {
		p.version = p.defaultVersion
		p.tagDirs = map[string]string{}
		p.anchors = map[string]*tree.Node{}

		if err := p.consumeDirectives(); err != nil {
			return nil, err
		}

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.DocumentStart {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		var doc *tree.Node
		if tok.Type == token.EOF || tok.Type == token.DocumentEnd || tok.Type == token.DocumentStart {
			doc = tree.NewNull()
		} else {
			doc, err = p.parseBlockNode(0)
			if err != nil {
				return nil, err
			}
		}
		doc.SetVersion(tree.Version(p.version))
		docs = append(docs, doc)

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.DocumentEnd {
			if _, err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	return docs, nil
}

func (p *Parser) consumeDirectives() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Type != token.Directive {
			return nil
		}
		if _, err := p.next(); err != nil {
			return err
		}
		switch tok.DirectiveName {
		case "YAML":
			if len(tok.DirectiveArgs) == 1 && tok.DirectiveArgs[0] == "1.1" {
				p.version = classify.V1_1
			} else {
				p.version = classify.V1_2
			}
		case "TAG":
			if len(tok.DirectiveArgs) == 2 {
				p.tagDirs[tok.DirectiveArgs[0]] = tok.DirectiveArgs[1]
			}
		}
	}
}

// --- block context ---

// parseBlockNode parses one node whose governing indent column is indent:
// a block sequence, a block mapping, or a bare scalar/flow value, deciding
// between mapping and bare value by parsing a candidate node and checking
// whether a ValueIndicator immediately follows it.
func (p *Parser) parseBlockNode(indent int) (*tree.Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Type == token.BlockSequenceEntry && tok.Column == indent {
		return p.parseBlockSequence(indent)
	}
	if tok.Type == token.KeyIndicator && tok.Column == indent {
		return p.parseBlockMapping(indent, nil, false)
	}

	first, err := p.parseNodeContent(indent)
	if err != nil {
		return nil, err
	}
	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.ValueIndicator {
		return p.parseBlockMapping(indent, first, true)
	}
	return first, nil
}

func (p *Parser) parseBlockSequence(indent int) (*tree.Node, error) {
	var items []*tree.Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != token.BlockSequenceEntry || tok.Column != indent {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		childIndent := indent + 1

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		var value *tree.Node
		if tok.Type == token.EOF || tok.Type == token.DocumentStart || tok.Type == token.DocumentEnd || tok.Column < childIndent {
			value = tree.NewNull()
		} else {
			value, err = p.parseBlockNode(tok.Column)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	return tree.NewSequence(items), nil
}

// parseBlockMapping builds a block mapping. If firstKeyAlreadyParsed is
// true, firstKey is the already-parsed first key node (parseBlockNode
// speculatively parsed a candidate node and found ':' following it).
func (p *Parser) parseBlockMapping(indent int, firstKey *tree.Node, firstKeyAlreadyParsed bool) (*tree.Node, error) {
	var pairs []tree.Pair
	key := firstKey
	haveKey := firstKeyAlreadyParsed

	for {
		if !haveKey {
			tok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if tok.Type == token.KeyIndicator {
				if _, err := p.next(); err != nil {
					return nil, err
				}
				k, err := p.parseBlockNode(indent + 1)
				if err != nil {
					return nil, err
				}
				key = k
			} else {
				k, err := p.parseNodeContent(indent)
				if err != nil {
					return nil, err
				}
				key = k
			}
		}

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var value *tree.Node
		if tok.Type == token.ValueIndicator {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			vtok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if vtok.Type == token.EOF || vtok.Type == token.DocumentStart || vtok.Type == token.DocumentEnd || (vtok.Column <= indent && vtok.Type != token.KeyIndicator) {
				value = tree.NewNull()
			} else {
				childIndent := indent
				if vtok.Column > indent {
					childIndent = vtok.Column
				}
				value, err = p.parseBlockNode(childIndent)
				if err != nil {
					return nil, err
				}
			}
		} else {
			value = tree.NewNull()
		}

		for _, existing := range pairs {
			if tree.Equal(existing.Key, key) {
				return nil, errAt("duplicate-key", tok.Start, "mapping already has this key")
			}
		}
		pairs = append(pairs, tree.Pair{Key: key, Value: value})

		key = nil
		haveKey = false

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Column != indent || tok.Type == token.EOF || tok.Type == token.DocumentStart || tok.Type == token.DocumentEnd {
			break
		}
		if tok.Type != token.KeyIndicator && !startsContent(tok.Type) {
			break
		}
	}
	return tree.NewMapping(pairs), nil
}

func startsContent(t token.Type) bool {
	switch t {
	case token.ValueIndicator, token.FlowSequenceEnd, token.FlowMappingEnd, token.FlowEntry:
		return false
	}
	return true
}

// --- node content: anchors, tags, aliases, scalars, flow collections ---

func (p *Parser) parseNodeContent(indent int) (*tree.Node, error) {
	var anchorName string
	var hasAnchor bool
	var tagHandle, tagSuffix string
	var hasTag, verbatim bool

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.Anchor {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			anchorName = tok.Value
			hasAnchor = true
			continue
		}
		if tok.Type == token.Tag {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			tagHandle, tagSuffix, verbatim = tok.TagHandle, tok.TagSuffix, tok.Verbatim
			hasTag = true
			continue
		}
		break
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var n *tree.Node
	switch tok.Type {
	case token.Alias:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		target, ok := p.anchors[tok.Value]
		if !ok {
			return nil, errAt("invalid-alias", tok.Start, "undefined anchor %q", tok.Value)
		}
		n, err = tree.AliasOf(target)
		if err != nil {
			return nil, errAt("invalid-usage", tok.Start, "%s", err)
		}
		return n, nil
	case token.FlowSequenceStart:
		n, err = p.parseFlowSequence()
	case token.FlowMappingStart:
		n, err = p.parseFlowMapping()
	case token.Scalar:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		n, err = p.buildScalar(tok, hasTag, resolvedTag(tagHandle, tagSuffix, verbatim, p.tagDirs))
	default:
		n = tree.NewNull()
	}
	if err != nil {
		return nil, err
	}

	if hasTag {
		n.SetTag(resolvedTag(tagHandle, tagSuffix, verbatim, p.tagDirs))
	}
	if hasAnchor {
		n.SetAnchor(anchorName)
		p.anchors[anchorName] = n
	}
	return n, nil
}

// resolvedTag computes the canonical tag string from a TAG token's parts,
// per spec.md §4.3's handle resolution (%TAG-mapped handles, "!!"
// shorthand, bare "!" non-specific, and verbatim "!<uri>").
func resolvedTag(handle, suffix string, verbatim bool, tagDirs map[string]string) string {
	if verbatim {
		return suffix
	}
	switch handle {
	case "!!":
		return defaultTagPrefix + suffix
	case "!":
		if suffix == "" {
			return "!"
		}
		return "!" + suffix
	default:
		if prefix, ok := tagDirs[handle]; ok {
			return prefix + suffix
		}
		return handle + suffix
	}
}

func (p *Parser) buildScalar(tok token.Token, hasTag bool, tag string) (*tree.Node, error) {
	if hasTag {
		return scalarFromTag(tag, tok.Value, tok.Start)
	}
	if tok.ScalarStyle != token.PlainScalar {
		return tree.NewString(tok.Value), nil
	}
	r := classify.Classify(tok.Value, p.version)
	switch r.Kind {
	case classify.Null:
		return tree.NewNull(), nil
	case classify.Bool:
		return tree.NewBool(r.Bool), nil
	case classify.Int:
		return tree.NewInt(r.Int), nil
	case classify.Float:
		return tree.NewFloat(r.Float), nil
	default:
		return tree.NewString(tok.Value), nil
	}
}

// scalarFromTag builds a scalar node whose kind is forced by an explicit
// tag, rather than inferred by the core-schema classifier.
func scalarFromTag(tag, value string, pos token.Position) (*tree.Node, error) {
	switch tag {
	case defaultTagPrefix + "null", "!!null":
		return tree.NewNull(), nil
	case defaultTagPrefix + "bool", "!!bool":
		r := classify.Classify(value, classify.V1_1)
		if r.Kind != classify.Bool {
			return nil, errAt("invalid-number", pos, "%q is not a valid !!bool scalar", value)
		}
		return tree.NewBool(r.Bool), nil
	case defaultTagPrefix + "int", "!!int":
		r := classify.Classify(value, classify.V1_1)
		if r.Kind != classify.Int {
			return nil, errAt("invalid-number", pos, "%q is not a valid !!int scalar", value)
		}
		return tree.NewInt(r.Int), nil
	case defaultTagPrefix + "float", "!!float":
		r := classify.Classify(value, classify.V1_1)
		if r.Kind != classify.Float {
			return nil, errAt("invalid-number", pos, "%q is not a valid !!float scalar", value)
		}
		return tree.NewFloat(r.Float), nil
	case defaultTagPrefix + "str", "!!str", "!":
		n := tree.NewString(value)
		return n, nil
	default:
		n := tree.NewString(value)
		return n, nil
	}
}

// --- flow context ---

func (p *Parser) parseFlowSequence() (*tree.Node, error) {
	if _, err := p.next(); err != nil { // consume '['
		return nil, err
	}
	var items []*tree.Node
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.FlowSequenceEnd {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			break
		}
		if tok.Type == token.FlowEntry {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			continue
		}
		item, err := p.parseFlowNode()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	n := tree.NewSequence(items)
	n.SetStyle(tree.FlowStyle)
	return n, nil
}

func (p *Parser) parseFlowMapping() (*tree.Node, error) {
	if _, err := p.next(); err != nil { // consume '{'
		return nil, err
	}
	var pairs []tree.Pair
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.FlowMappingEnd {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			break
		}
		if tok.Type == token.FlowEntry {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			continue
		}

		var key *tree.Node
		if tok.Type == token.KeyIndicator {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			key, err = p.parseFlowNode()
		} else {
			key, err = p.parseFlowNode()
		}
		if err != nil {
			return nil, err
		}

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		var value *tree.Node
		if tok.Type == token.ValueIndicator {
			if _, err := p.next(); err != nil {
				return nil, err
			}
			vtok, err := p.peek()
			if err != nil {
				return nil, err
			}
			if vtok.Type == token.FlowEntry || vtok.Type == token.FlowMappingEnd {
				value = tree.NewNull()
			} else {
				value, err = p.parseFlowNode()
				if err != nil {
					return nil, err
				}
			}
		} else {
			value = tree.NewNull()
		}

		for _, existing := range pairs {
			if tree.Equal(existing.Key, key) {
				return nil, errAt("duplicate-key", tok.Start, "flow mapping already has this key")
			}
		}
		pairs = append(pairs, tree.Pair{Key: key, Value: value})
	}
	n := tree.NewMapping(pairs)
	n.SetStyle(tree.FlowStyle)
	return n, nil
}

// parseFlowNode parses one flow-context value: a nested flow collection or
// a scalar/anchor/tag/alias combination. A block sequence entry ("- ")
// inside a flow collection is rejected with invalid-indentation.
func (p *Parser) parseFlowNode() (*tree.Node, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == token.BlockSequenceEntry {
		return nil, errAt("invalid-indentation", tok.Start, "block sequence entry inside a flow collection")
	}
	return p.parseNodeContent(0)
}

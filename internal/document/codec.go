package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// nativeTags are the resolved tags of the core YAML type system. Anything
// outside this set is carried through as a Tagged value.
var nativeTags = map[string]struct{}{
	"!!str":       {},
	"!!int":       {},
	"!!float":     {},
	"!!bool":      {},
	"!!null":      {},
	"!!timestamp": {},
	"!!binary":    {},
	"!!map":       {},
	"!!seq":       {},
	"!!merge":     {},
}

func isNativeTag(tag string) bool {
	_, ok := nativeTags[tag]
	return ok
}

// Codec decodes and encodes configuration documents. Tag handling is scoped
// to the instance, so codecs can be used independently without shared state.
type Codec struct {
	indent int
}

// NewCodec returns a codec with two-space indentation.
func NewCodec() *Codec {
	return &Codec{indent: 2}
}

// Decode parses data into the value model. The top-level value must be a
// mapping. Unrecognised tags never fail the decode unless their payload
// cannot be represented (ErrTagPayload); they come back as Tagged values.
func (c *Codec) Decode(data []byte) (*Mapping, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	top, err := fromNode(root.Content[0])
	if err != nil {
		return nil, err
	}
	doc, ok := top.(*Mapping)
	if !ok {
		return nil, ErrNotMapping
	}
	return doc, nil
}

// Encode serialises the document back to YAML, preserving key order and
// custom tags.
func (c *Codec) Encode(doc *Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(toNode(doc)); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// fromNode converts one yaml.Node into the value model.
func fromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		// Anchors are rare in these documents; resolve them in place.
		return fromNode(n.Alias)

	case yaml.ScalarNode:
		if isNativeTag(n.Tag) {
			text := n.Value
			// Nulls can be spelled "", "~" or "null"; normalise so a
			// decode/encode/decode cycle is a fixed point.
			if n.Tag == "!!null" {
				text = "null"
			}
			return Scalar{Tag: n.Tag, Text: text}, nil
		}
		return Tagged{Tag: n.Tag, Text: n.Value}, nil

	case yaml.SequenceNode:
		if !isNativeTag(n.Tag) {
			return taggedSequence(n)
		}
		seq := make(Sequence, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := fromNode(child)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		if !isNativeTag(n.Tag) {
			return nil, fmt.Errorf("%w: tag %s on a mapping (line %d)", ErrTagPayload, n.Tag, n.Line)
		}
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d", ErrBadKey, keyNode.Line)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("document: unsupported node kind %d (line %d)", n.Kind, n.Line)
	}
}

// taggedSequence converts a sequence carrying a custom tag, such as
// !ENV [FLAG_NAME, false]. Every item must itself be a plain scalar;
// anything deeper cannot be represented without losing data.
func taggedSequence(n *yaml.Node) (Value, error) {
	items := make([]Scalar, 0, len(n.Content))
	for _, child := range n.Content {
		if child.Kind != yaml.ScalarNode || !isNativeTag(child.Tag) {
			return nil, fmt.Errorf("%w: tag %s sequence contains a non-scalar item (line %d)",
				ErrTagPayload, n.Tag, child.Line)
		}
		items = append(items, Scalar{Tag: child.Tag, Text: child.Value})
	}
	return Tagged{Tag: n.Tag, Items: items, IsSequence: true}, nil
}

// toNode converts a model value back into a yaml.Node tree.
func toNode(v Value) *yaml.Node {
	switch val := v.(type) {
	case Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: val.Tag, Value: val.Text}

	case Tagged:
		if val.IsSequence {
			n := &yaml.Node{Kind: yaml.SequenceNode, Tag: val.Tag, Style: yaml.FlowStyle}
			for _, item := range val.Items {
				n.Content = append(n.Content, &yaml.Node{
					Kind: yaml.ScalarNode, Tag: item.Tag, Value: item.Text,
				})
			}
			return n
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: val.Tag, Value: val.Text}

	case Sequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			n.Content = append(n.Content, toNode(item))
		}
		return n

	case *Mapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range val.Entries() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toNode(e.Value),
			)
		}
		return n

	default:
		// The Value set is closed; this is unreachable for model-built data.
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

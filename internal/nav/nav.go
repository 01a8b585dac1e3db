// Package nav models a documentation site's navigation tree and implements
// section lookup over it.
//
// The on-disk nav is a heterogeneous YAML structure (strings, lists and
// single-entry mappings used interchangeably). Parsing converts it into an
// explicit two-variant tree, Leaf and Group, so traversal code never needs
// runtime shape inspection.
package nav

import (
	"fmt"
	"strings"

	"docsubset/internal/document"
)

// Node is one entry of the navigation tree: either a Leaf or a Group.
type Node interface {
	node()
}

// Leaf references a single content file by its path relative to the docs
// root, e.g. "langgraph/index.md".
type Leaf struct {
	Path string
}

func (Leaf) node() {}

// Group is a labelled section containing further nodes. Labels are unique
// among siblings but may repeat at other depths.
type Group struct {
	Label    string
	Children []Node
}

func (Group) node() {}

// Parse converts the nav value of a decoded document into a tree. The value
// must be a sequence; each item is either a path string or a mapping whose
// entries become labelled groups (a scalar entry value becomes a group with
// a single leaf child).
func Parse(v document.Value) ([]Node, error) {
	seq, ok := v.(document.Sequence)
	if !ok {
		return nil, fmt.Errorf("nav: expected a sequence of items, got %T", v)
	}
	return parseItems(seq)
}

func parseItems(seq document.Sequence) ([]Node, error) {
	nodes := make([]Node, 0, len(seq))
	for _, item := range seq {
		parsed, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, parsed...)
	}
	return nodes, nil
}

// parseItem returns the nodes for a single nav item. A mapping item yields
// one Group per entry, in entry order.
func parseItem(item document.Value) ([]Node, error) {
	switch v := item.(type) {
	case document.Scalar:
		return []Node{Leaf{Path: v.Text}}, nil

	case *document.Mapping:
		nodes := make([]Node, 0, v.Len())
		for _, e := range v.Entries() {
			children, err := parseChild(e.Value)
			if err != nil {
				return nil, fmt.Errorf("nav: section %q: %w", e.Key, err)
			}
			nodes = append(nodes, Group{Label: e.Key, Children: children})
		}
		return nodes, nil

	default:
		return nil, fmt.Errorf("nav: unsupported item type %T", item)
	}
}

// parseChild handles the value side of a labelled entry: a path string, or
// a nested list of items.
func parseChild(v document.Value) ([]Node, error) {
	switch child := v.(type) {
	case document.Scalar:
		return []Node{Leaf{Path: child.Text}}, nil
	case document.Sequence:
		return parseItems(child)
	default:
		return nil, fmt.Errorf("unsupported child type %T", v)
	}
}

// Find locates the group whose label matches target, case-insensitively.
//
// Traversal is breadth-first over the whole forest with an explicit FIFO
// queue: all top-level nodes are enqueued first, then each dequeued group's
// children in order. Labels may repeat at different depths; FIFO order
// guarantees the shallowest match is returned. The boolean is false when no
// group matches — an ordinary outcome, not an error.
func Find(forest []Node, target string) (Group, bool) {
	want := strings.ToLower(target)

	queue := make([]Node, 0, len(forest))
	queue = append(queue, forest...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		group, ok := current.(Group)
		if !ok {
			continue
		}
		if strings.ToLower(group.Label) == want {
			return group, true
		}
		queue = append(queue, group.Children...)
	}
	return Group{}, false
}

// LeafPaths flattens every leaf path reachable under the given nodes, in
// depth-first order with children visited in their original order.
// Duplicates are kept; callers that need uniqueness reduce the result
// themselves.
func LeafPaths(nodes ...Node) []string {
	var paths []string
	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Leaf:
			paths = append(paths, v.Path)
		case Group:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return paths
}

// Values converts nodes back into the document value form used by the
// configuration file, the inverse of Parse.
func Values(nodes []Node) document.Value {
	seq := make(document.Sequence, 0, len(nodes))
	for _, n := range nodes {
		seq = append(seq, itemValue(n))
	}
	return seq
}

func itemValue(n Node) document.Value {
	switch v := n.(type) {
	case Leaf:
		return document.String(v.Path)
	case Group:
		m := document.NewMapping()
		// A group holding a single leaf is written in the compact
		// "label: path" form used throughout hand-authored navs.
		if len(v.Children) == 1 {
			if leaf, ok := v.Children[0].(Leaf); ok {
				m.Set(v.Label, document.String(leaf.Path))
				return m
			}
		}
		m.Set(v.Label, Values(v.Children))
		return m
	}
	return document.Scalar{Tag: "!!null", Text: "null"}
}

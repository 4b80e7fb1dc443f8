// Package hierarchy models the tree of data sources that inherit from one
// another. A hierarchy is parsed from a YAML document where nesting denotes
// the parent/child relationship:
//
//	global.yaml:
//	  teams/myteam.yaml:
//	    - teams/myteam/dev.yaml
//	    - teams/myteam/prod.yaml
//	  teams/otherteam.yaml:
//
// Source identifiers are opaque strings; sibling order follows declaration
// order in the document and is preserved by all queries.
package hierarchy

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Hierarchy is an ordered tree of source identifiers. It answers
// ancestor-chain and descendant-subtree queries. The zero value is not
// usable; construct one with ParseYAML.
type Hierarchy struct {
	roots []*node
	index map[string]*node
}

type node struct {
	id       string
	parent   *node
	children []*node
}

// ParseYAML parses a hierarchy from a YAML document. Mapping keys become
// parents of their values; sequences list siblings; scalars are leaves.
// Every source id must be unique within the tree.
func ParseYAML(data []byte) (*Hierarchy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("hierarchy: parsing yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("hierarchy: empty document")
	}

	h := &Hierarchy{index: make(map[string]*node)}
	roots, err := h.parseLevel(doc.Content[0], nil)
	if err != nil {
		return nil, err
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("hierarchy: no sources declared")
	}
	h.roots = roots
	return h, nil
}

// parseLevel parses one YAML node into the list of sources it declares at
// this level, attaching them beneath parent.
func (h *Hierarchy) parseLevel(n *yaml.Node, parent *node) ([]*node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		leaf, err := h.add(n.Value, parent)
		if err != nil {
			return nil, err
		}
		return []*node{leaf}, nil

	case yaml.SequenceNode:
		var level []*node
		for _, item := range n.Content {
			siblings, err := h.parseLevel(item, parent)
			if err != nil {
				return nil, err
			}
			level = append(level, siblings...)
		}
		return level, nil

	case yaml.MappingNode:
		var level []*node
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("hierarchy: source ids must be strings, got a %s key at line %d", kindName(key.Kind), key.Line)
			}
			branch, err := h.add(key.Value, parent)
			if err != nil {
				return nil, err
			}
			children, err := h.parseLevel(value, branch)
			if err != nil {
				return nil, err
			}
			branch.children = children
			level = append(level, branch)
		}
		return level, nil

	default:
		return nil, fmt.Errorf("hierarchy: unsupported %s node at line %d", kindName(n.Kind), n.Line)
	}
}

func (h *Hierarchy) add(id string, parent *node) (*node, error) {
	if id == "" {
		return nil, fmt.Errorf("hierarchy: empty source id")
	}
	if _, exists := h.index[id]; exists {
		return nil, fmt.Errorf("hierarchy: duplicate source %q", id)
	}
	n := &node{id: id, parent: parent}
	h.index[id] = n
	return n, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// AncestorsOf returns the chain of sources from the root down to and
// including id. The second return value is false when id is not in the
// hierarchy; absence is not an error here, callers decide how fatal it is.
func (h *Hierarchy) AncestorsOf(id string) ([]string, bool) {
	n, ok := h.index[id]
	if !ok {
		return nil, false
	}
	var chain []string
	for ; n != nil; n = n.parent {
		chain = append(chain, n.id)
	}
	// Collected nearest-first; reverse to root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, true
}

// DescendantsOf returns id followed by every source in its subtree in
// pre-order: a node before any of its descendants, and before subsequent
// siblings' subtrees. The second return value is false when id is unknown.
func (h *Hierarchy) DescendantsOf(id string) ([]string, bool) {
	n, ok := h.index[id]
	if !ok {
		return nil, false
	}
	return appendSubtree(nil, n), true
}

func appendSubtree(acc []string, n *node) []string {
	acc = append(acc, n.id)
	for _, child := range n.children {
		acc = appendSubtree(acc, child)
	}
	return acc
}

// Sources returns every source in the hierarchy in pre-order, roots first.
func (h *Hierarchy) Sources() []string {
	var all []string
	for _, root := range h.roots {
		all = appendSubtree(all, root)
	}
	return all
}

// Contains reports whether id is a source in the hierarchy.
func (h *Hierarchy) Contains(id string) bool {
	_, ok := h.index[id]
	return ok
}

// String renders the tree with two-space indentation per level, suitable
// for inclusion in diagnostics.
func (h *Hierarchy) String() string {
	var sb strings.Builder
	for _, root := range h.roots {
		writeTree(&sb, root, 0)
	}
	return sb.String()
}

func writeTree(sb *strings.Builder, n *node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.id)
	sb.WriteByte('\n')
	for _, child := range n.children {
		writeTree(sb, child, depth+1)
	}
}

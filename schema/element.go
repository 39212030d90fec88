package schema

import "github.com/google/uuid"

// Element is one node of an intermediate document representation (IDR)
// tree. Nodes live in an ElementTree arena and reference each other by
// index, so the tree carries no cyclic pointer ownership. Start/End are
// rune offsets into the source document; zero for synthetic nodes.
type Element struct {
	ID    uuid.UUID
	Type  string
	Text  string
	Level int

	Start int
	End   int

	// Parent is the arena index of the parent node, -1 for the root.
	Parent   int
	Children []int

	Metadata map[string]string
}

// ElementTree is an arena of Elements. Index 0 is always the root node.
type ElementTree struct {
	Nodes []Element
}

// NewElementTree creates a tree holding only a root node of the given type.
func NewElementTree(rootType string) *ElementTree {
	return &ElementTree{
		Nodes: []Element{{
			ID:       uuid.New(),
			Type:     rootType,
			Parent:   -1,
			Metadata: make(map[string]string),
		}},
	}
}

// Root returns the arena index of the root node.
func (t *ElementTree) Root() int { return 0 }

// Node returns the node at the given arena index.
func (t *ElementTree) Node(i int) *Element { return &t.Nodes[i] }

// Len returns the number of nodes in the arena.
func (t *ElementTree) Len() int { return len(t.Nodes) }

// AddChild appends el to the arena as a child of parent and returns its
// index. The element's ID and metadata map are allocated when unset.
func (t *ElementTree) AddChild(parent int, el Element) int {
	if el.ID == uuid.Nil {
		el.ID = uuid.New()
	}
	if el.Metadata == nil {
		el.Metadata = make(map[string]string)
	}
	el.Parent = parent
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, el)
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// Walk visits idx and its descendants depth-first. Returning false from fn
// skips the node's children.
func (t *ElementTree) Walk(idx int, fn func(idx int, el *Element) bool) {
	if !fn(idx, &t.Nodes[idx]) {
		return
	}
	for _, child := range t.Nodes[idx].Children {
		t.Walk(child, fn)
	}
}

// IDRParser converts a raw document into an intermediate representation
// tree. Implementations live outside the core engine; the structure-aware
// strategy consumes only this interface.
type IDRParser interface {
	Parse(text string) (*ElementTree, error)
}

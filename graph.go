package flatdawg

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// MaxChars is the number of distinct letters a node can have.
	MaxChars = 256

	// ReservedEdges is the size of the fixed region at the start of every
	// built graph: the null edge at index 0 followed by MaxChars root slots.
	ReservedEdges = 1 + MaxChars
)

// Graph is a minimized, immutable word graph. Node 0 is the null node, the
// root's edges start at index 1, and one synthetic edge past the last real
// edge points at the root so that Root().Child() == Begin().
//
// A loaded Graph is safe for concurrent lookups. ReadFrom, LoadEdges and
// WriteTo record their last failure in Err and must not be called
// concurrently with each other.
type Graph struct {
	diagnostic

	// len(edges) == count+1; edges[count] is the before-root edge.
	edges []Edge
}

// FromEdges returns a graph holding a copy of edges.
func FromEdges(edges []Edge) (*Graph, error) {
	g := &Graph{}
	if err := g.LoadEdges(edges); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadEdges replaces the contents of the graph with a copy of edges.
func (g *Graph) LoadEdges(edges []Edge) error {
	g.clear()
	if len(edges) > MaxChild+1 {
		return g.fail(fmt.Errorf("%w: %d edges, max is %d", ErrTooLarge, len(edges), MaxChild+1))
	}
	buf := make([]Edge, len(edges)+1)
	copy(buf, edges)
	g.setEdges(buf)
	return nil
}

func (g *Graph) setEdges(buf []Edge) {
	buf[len(buf)-1] = Edge(0).WithChild(1)
	g.edges = buf
}

func (g *Graph) clear() {
	g.edges = nil
}

// NumEdges returns the number of stored edges, including the null edge and
// the reserved root region, but not the synthetic before-root edge.
func (g *Graph) NumEdges() int {
	if len(g.edges) == 0 {
		return 0
	}
	return len(g.edges) - 1
}

// Edge returns the edge at index i, or the zero edge if i is out of range.
func (g *Graph) Edge(i int) Edge {
	if i < 0 || i >= len(g.edges) {
		return 0
	}
	return g.edges[i]
}

// Root returns a cursor at the synthetic edge before the root node.
func (g *Graph) Root() Cursor { return Cursor{g: g, index: uint32(g.NumEdges())} }

// Begin returns a cursor at the root node's first edge.
func (g *Graph) Begin() Cursor { return Cursor{g: g, index: 1} }

// End returns the null cursor. Scans that run out of siblings, and lookups
// that fail, land here.
func (g *Graph) End() Cursor { return Cursor{g: g, index: 0} }

// FindEdge scans the siblings from start onward and returns the first edge
// labeled letter, or End(). Letters within a node are not sorted.
func (g *Graph) FindEdge(letter byte, start Cursor) Cursor {
	c := start
	for !c.IsEnd() {
		if c.Edge().Letter() == letter {
			break
		}
		c = c.Next()
	}
	return c
}

// ContainsWord reports whether word was added to the graph. The empty word
// is never a member.
func (g *Graph) ContainsWord(word string) bool {
	c := g.Begin()
	eow := false
	for i := 0; i < len(word); i++ {
		c = g.FindEdge(word[i], c)
		if c.IsEnd() {
			return false
		}
		eow = c.Edge().EndOfWord()
		c = c.Child()
	}
	return eow
}

// Verify checks that every child index is either 0 or the first edge of a
// node, and that nodes below the root only point at nodes stored before
// them, so every traversal terminates.
func (g *Graph) Verify() error {
	n := g.NumEdges()
	if n > 1 && !g.edges[n-1].EndOfNode() {
		return fmt.Errorf("%w: last edge %d does not end a node", ErrCorrupt, n-1)
	}
	for i := 1; i < n; i++ {
		child := g.edges[i].Child()
		if child == 0 {
			continue
		}
		if int(child) >= n {
			return fmt.Errorf("%w: edge %d points past the end (%d >= %d)", ErrCorrupt, i, child, n)
		}
		if child != 1 && !(Cursor{g: g, index: child}).Prev().Edge().EndOfNode() {
			return fmt.Errorf("%w: edge %d points into the middle of a node (%d)", ErrCorrupt, i, child)
		}
		if i >= ReservedEdges && int(child) >= i {
			return fmt.Errorf("%w: edge %d points forward to %d", ErrCorrupt, i, child)
		}
	}
	return nil
}

// Dump writes one line per stored edge to w.
func (g *Graph) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Edges=%d\n", g.NumEdges())
	for i := 0; i < g.NumEdges(); i++ {
		fmt.Fprintf(bw, "[%08d] %v\n", i, g.edges[i])
	}
	return bw.Flush()
}

package flatdawg

// Cursor points at one edge slot of a Graph. It does not own the graph and
// must not outlive it. Cursors are values: moving one returns a new cursor.
type Cursor struct {
	g     *Graph
	index uint32
}

// Edge returns the edge under the cursor.
func (c Cursor) Edge() Edge { return c.g.Edge(int(c.index)) }

// Index returns the edge slot the cursor points at.
func (c Cursor) Index() int { return int(c.index) }

// Next moves to the next sibling. Stepping past the last edge of a node
// yields End().
func (c Cursor) Next() Cursor {
	if c.Edge().EndOfNode() || int(c.index)+1 >= len(c.g.edges) {
		return c.End()
	}
	c.index++
	return c
}

// Prev moves to the previous slot. It does not respect node boundaries.
func (c Cursor) Prev() Cursor {
	if c.index > 0 {
		c.index--
	}
	return c
}

// Child returns a cursor at the first edge of the node this edge leads to.
// For edges without children this equals End().
func (c Cursor) Child() Cursor {
	return Cursor{g: c.g, index: c.Edge().Child()}
}

// FindEdge searches this cursor's remaining siblings for letter.
func (c Cursor) FindEdge(letter byte) Cursor { return c.g.FindEdge(letter, c) }

// End returns the null cursor of the owning graph.
func (c Cursor) End() Cursor { return Cursor{g: c.g} }

// IsEnd reports whether the cursor is at the null edge.
func (c Cursor) IsEnd() bool { return c.index == 0 }

// Equal reports whether both cursors point at the same slot of the same graph.
func (c Cursor) Equal(other Cursor) bool {
	return c.g == other.g && c.index == other.index
}

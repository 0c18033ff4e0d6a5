package flatdawg

import "fmt"

// Edge layout, low bit first:
//
//	bits  0-7   letter
//	bit   8     end-of-word
//	bit   9     end-of-node
//	bits 10-31  index of the first edge of the child node
const (
	letterBits = 8
	childBits  = 32 - letterBits - 2

	maskLetter    = 1<<letterBits - 1
	maskEndOfWord = 1 << letterBits
	maskEndOfNode = 1 << (letterBits + 1)
	shiftChild    = letterBits + 2
	maskChild     = (1<<childBits - 1) << shiftChild

	// MaxChild is the largest edge index a child field can hold.
	MaxChild = 1<<childBits - 1
)

// Edge is one labeled transition out of a node, packed into 32 bits.
// Two edges are equal exactly when their packed values are equal.
type Edge uint32

// NewEdge packs the four edge fields. Child indexes above MaxChild are
// truncated.
func NewEdge(letter byte, endOfWord, endOfNode bool, child uint32) Edge {
	return Edge(0).
		WithLetter(letter).
		WithEndOfWord(endOfWord).
		WithEndOfNode(endOfNode).
		WithChild(child)
}

// Letter is the byte this edge is labeled with.
func (e Edge) Letter() byte { return byte(e & maskLetter) }

// EndOfWord reports whether the path ending at this edge spells a word.
func (e Edge) EndOfWord() bool { return e&maskEndOfWord != 0 }

// EndOfNode reports whether this is the last edge among its siblings.
func (e Edge) EndOfNode() bool { return e&maskEndOfNode != 0 }

// Child is the index of the first edge of the node this edge leads to,
// or 0 if it leads nowhere.
func (e Edge) Child() uint32 { return uint32(e&maskChild) >> shiftChild }

func (e Edge) WithLetter(c byte) Edge {
	return e&^maskLetter | Edge(c)
}

func (e Edge) WithEndOfWord(v bool) Edge {
	if v {
		return e | maskEndOfWord
	}
	return e &^ maskEndOfWord
}

func (e Edge) WithEndOfNode(v bool) Edge {
	if v {
		return e | maskEndOfNode
	}
	return e &^ maskEndOfNode
}

func (e Edge) WithChild(n uint32) Edge {
	return e&^maskChild | Edge(n<<shiftChild)&maskChild
}

// SetEndOfWord, SetEndOfNode and SetChild update an edge in place. They are
// only used on edges still owned by a Builder.
func (e *Edge) SetEndOfWord(v bool) { *e = e.WithEndOfWord(v) }

func (e *Edge) SetEndOfNode(v bool) { *e = e.WithEndOfNode(v) }

func (e *Edge) SetChild(n uint32) { *e = e.WithChild(n) }

func (e Edge) String() string {
	return fmt.Sprintf("(%q -> %d eow:%t eon:%t)", e.Letter(), e.Child(), e.EndOfWord(), e.EndOfNode())
}

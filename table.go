package flatdawg

import "math/bits"

const probeIncrement = 9

// nodeTable maps the content of a finished node to the index where an
// identical node is already stored. Slot value 0 means empty; index 0 is the
// null node and never stored here.
type nodeTable struct {
	slots  []uint32
	probes uint64
}

func newNodeTable(size int) *nodeTable {
	return &nodeTable{slots: make([]uint32, size)}
}

// hashEdges is order sensitive: each step rotates the accumulator before
// mixing in the next packed edge, children included.
func hashEdges(edges []Edge) uint32 {
	var h uint32
	for _, e := range edges {
		h = bits.RotateLeft32(h, 1) ^ uint32(e)
	}
	return h
}

// find returns the slot holding a node equal to node, or the empty slot
// where it should be inserted. stored is the permanent edge array.
func (t *nodeTable) find(node []Edge, stored []Edge) (int, error) {
	size := uint64(len(t.slots))
	idx := uint64(hashEdges(node)) % size
	first := idx
	step := uint64(probeIncrement) % size

	for n := uint64(0); n < size; n++ {
		t.probes++
		start := t.slots[idx]
		if start == 0 || sameNode(stored, int(start), node) {
			return int(idx), nil
		}

		idx = (idx + step) % size
		step = (step + probeIncrement) % size
		if idx == first {
			break
		}
	}
	return 0, ErrTableFull
}

func sameNode(stored []Edge, start int, node []Edge) bool {
	if start+len(node) > len(stored) {
		return false
	}
	for i, e := range node {
		if stored[start+i] != e {
			return false
		}
	}
	return true
}

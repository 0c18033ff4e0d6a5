/*
Package flatdawg builds and queries a minimized Directed Acyclic Word Graph
stored as one flat array of 32-bit edges.

The graph answers a single question, whether a byte string is one of the
words it was built from, using memory proportional to the structure the
words share rather than to their total length. Common suffixes are stored
once: "bats", "cats" and "hats" all point at the same "ats" nodes.

Each edge packs a letter, an end-of-word flag, an end-of-node flag and the
index of its child node into a uint32. The edges of a node are stored next
to each other and the last one carries end-of-node, so a node is just the
index of its first edge. Index 0 is the null node, and the root's edges
always start at index 1.

To build a graph, create a Builder with New, call Start, then add words in
non-decreasing byte order with AddWord. Finish returns the Graph:

	b := flatdawg.New()
	if err := b.Start(); err != nil {
		return err
	}
	for _, w := range words {
		if err := b.AddWord(w); err != nil {
			return err
		}
	}
	g, err := b.Finish()

While building, the Builder keeps one frame of edges for each depth of the
word being added. Frames deeper than the point where a new word diverges
from the previous one can no longer change, so they are finished: a hash
table keyed on the frame's packed edges finds an identical node if one is
already stored, and otherwise the frame is appended to the edge array.

A Graph can be written with WriteTo or Save and read back with Read or Load.
The format is a small header followed by the edges, all little-endian;
see disk.go.
*/
package flatdawg

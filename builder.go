package flatdawg

import (
	"fmt"

	"github.com/rs/zerolog"
)

type builderState int

const (
	stateIdle builderState = iota
	stateBuilding
	stateFinished
	stateFailed
)

// Stats describes the work done by a Builder.
type Stats struct {
	Words       int    // distinct words added
	Duplicates  int    // repeats of the previous word, ignored
	NodesStored int    // nodes written to the edge array
	NodesShared int    // finished nodes that reused a stored node
	Edges       int    // edges in use, reserved region included
	Probes      uint64 // node table probes
}

// Builder creates a Graph from words supplied in sorted order. Each word
// extends a stack of in-progress nodes, one frame per depth. When a word
// diverges from the previous one, every frame below the divergence is
// finished: it is either matched against an identical node already stored,
// or appended to the edge array, and its parent edge is pointed at the
// result.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	diagnostic

	opts  options
	log   zerolog.Logger
	state builderState

	// these are released when building ends
	edges    []Edge // permanent edge array
	numEdges int
	table    *nodeTable
	frames   []Edge // maxWordLength frames of MaxChars edges
	counts   []int  // active edges per frame
	stackPos int

	stats Stats
}

// New creates a Builder. Call Start before adding words.
func New(opts ...Option) *Builder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{opts: o, log: o.logger}
}

// Start allocates the working state. It fails if the builder is already
// building, or has failed and was not Reset.
func (b *Builder) Start() error {
	switch b.state {
	case stateBuilding:
		return b.fail(ErrAlreadyStarted)
	case stateFailed:
		return b.fail(ErrBuilderFailed)
	}
	if err := b.opts.validate(); err != nil {
		return b.fail(err)
	}

	b.edges = make([]Edge, b.opts.maxEdges)
	b.table = newNodeTable(b.opts.tableSize)
	b.frames = make([]Edge, b.opts.maxWordLength*MaxChars)
	b.counts = make([]int, b.opts.maxWordLength)
	b.stackPos = 0

	// index 0 is the null node and the next MaxChars slots hold the root.
	b.numEdges = ReservedEdges
	b.stats = Stats{}
	b.state = stateBuilding
	return nil
}

// Reset discards all state, including any failure, and returns the builder
// to where New left it.
func (b *Builder) Reset() {
	b.release()
	b.state = stateIdle
	b.stats = Stats{}
	b.last = nil
}

func (b *Builder) release() {
	if b.table != nil {
		b.stats.Probes = b.table.probes
	}
	b.stats.Edges = b.numEdges
	b.edges = nil
	b.table = nil
	b.frames = nil
	b.counts = nil
	b.stackPos = 0
	b.numEdges = 0
}

// abort ends the run after a capacity failure.
func (b *Builder) abort(err error) error {
	b.log.Warn().Err(err).
		Int("words", b.stats.Words).
		Int("edges", b.numEdges).
		Msg("Graph construction failed")
	b.release()
	b.state = stateFailed
	return b.fail(err)
}

func (b *Builder) checkBuilding() error {
	switch b.state {
	case stateIdle:
		return ErrNotStarted
	case stateFinished:
		return ErrFinished
	case stateFailed:
		return ErrBuilderFailed
	}
	return nil
}

// Stats returns counters for the current or last run.
func (b *Builder) Stats() Stats {
	s := b.stats
	if b.state == stateBuilding {
		s.Edges = b.numEdges
		s.Probes = b.table.probes
	}
	return s
}

func (b *Builder) frame(depth int) []Edge {
	start := depth * MaxChars
	return b.frames[start : start+b.counts[depth]]
}

func (b *Builder) curEdge(depth int) *Edge {
	return &b.frames[depth*MaxChars+b.counts[depth]-1]
}

func (b *Builder) push(depth int, letter byte) error {
	if b.counts[depth] == MaxChars {
		return fmt.Errorf("%w: depth %d", ErrFrameFull, depth)
	}
	b.frames[depth*MaxChars+b.counts[depth]] = NewEdge(letter, false, false, 0)
	b.counts[depth]++
	return nil
}

// AddWord adds a word. Words must arrive in non-decreasing byte order; a
// repeat of the previous word is ignored. An out of order, empty or overlong
// word is rejected without changing the builder, and later words may still
// be added. Running out of capacity ends the run.
func (b *Builder) AddWord(word string) error {
	if err := b.checkBuilding(); err != nil {
		return b.fail(err)
	}
	if len(word) == 0 {
		return b.fail(ErrEmptyWord)
	}
	if len(word) >= b.opts.maxWordLength {
		return b.fail(&WordError{Word: word, Max: b.opts.maxWordLength, Err: ErrWordTooLong})
	}

	if b.stats.Words > 0 {
		// find the first letter that differs from the staged path
		i := 0
		for ; i <= b.stackPos && i < len(word); i++ {
			if word[i] != b.curEdge(i).Letter() {
				break
			}
		}

		if i <= b.stackPos {
			staged := b.curEdge(i).Letter()
			if i == len(word) || word[i] < staged {
				err := &OrderError{Word: word, Pos: i, Staged: staged}
				if i < len(word) {
					err.Got = word[i]
				}
				b.log.Debug().Str("word", word).Int("pos", i).Msg("Word out of order")
				return b.fail(err)
			}

			// everything deeper than the divergence is complete
			for ; b.stackPos > i; b.stackPos-- {
				if err := b.finishNode(b.stackPos); err != nil {
					return b.abort(err)
				}
			}
		} else if len(word) == b.stackPos+1 {
			b.stats.Duplicates++
			return nil
		} else {
			// the word extends the staged path
			b.stackPos++
		}
	}

	for ; b.stackPos < len(word); b.stackPos++ {
		if err := b.push(b.stackPos, word[b.stackPos]); err != nil {
			return b.abort(err)
		}
	}
	b.stackPos--

	b.curEdge(b.stackPos).SetEndOfWord(true)
	b.stats.Words++
	return nil
}

// finishNode minimizes the frame at depth and links it to its parent edge.
func (b *Builder) finishNode(depth int) error {
	node := b.frame(depth)
	node[len(node)-1].SetEndOfNode(true)

	slot, err := b.table.find(node, b.edges[:b.numEdges])
	if err != nil {
		return err
	}

	idx := b.table.slots[slot]
	if idx == 0 {
		if b.numEdges+len(node) > b.opts.maxEdges {
			return fmt.Errorf("%w: %d edges", ErrGraphFull, b.opts.maxEdges)
		}

		idx = uint32(b.numEdges)
		copy(b.edges[b.numEdges:], node)
		b.table.slots[slot] = idx
		b.numEdges += len(node)
		b.stats.NodesStored++
	} else {
		b.stats.NodesShared++
	}

	b.curEdge(depth - 1).SetChild(idx)

	clear(node)
	b.counts[depth] = 0
	return nil
}

// Finish minimizes the remaining frames and returns the graph. The builder
// releases its working state and cannot be used again until Start.
func (b *Builder) Finish() (*Graph, error) {
	if err := b.checkBuilding(); err != nil {
		return nil, b.fail(err)
	}

	for ; b.stackPos > 0; b.stackPos-- {
		if err := b.finishNode(b.stackPos); err != nil {
			return nil, b.abort(err)
		}
	}

	// the root is not deduplicated; it is copied into the reserved region
	if b.counts[0] > 0 {
		b.curEdge(0).SetEndOfNode(true)
	}
	copy(b.edges[1:ReservedEdges], b.frames[:MaxChars])
	b.edges[ReservedEdges-1].SetEndOfNode(true)

	g, err := FromEdges(b.edges[:b.numEdges])
	if err != nil {
		return nil, b.abort(err)
	}

	b.release()
	b.state = stateFinished

	b.log.Debug().
		Int("words", b.stats.Words).
		Int("duplicates", b.stats.Duplicates).
		Int("nodes_stored", b.stats.NodesStored).
		Int("nodes_shared", b.stats.NodesShared).
		Int("edges", b.stats.Edges).
		Uint64("probes", b.stats.Probes).
		Msg("Graph finished")

	return g, nil
}

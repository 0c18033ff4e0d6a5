package flatdawg

import (
	"fmt"

	"github.com/rs/zerolog"
)

const (
	// DefaultTableSize is the number of slots in the node table. It is prime.
	DefaultTableSize = 1000003

	// DefaultMaxEdges bounds the size of a built graph.
	DefaultMaxEdges = DefaultTableSize - 1

	// DefaultMaxWordLength is one more than the longest word accepted.
	DefaultMaxWordLength = 32
)

type options struct {
	maxWordLength int
	maxEdges      int
	tableSize     int
	logger        zerolog.Logger
}

func defaultOptions() options {
	return options{
		maxWordLength: DefaultMaxWordLength,
		maxEdges:      DefaultMaxEdges,
		tableSize:     DefaultTableSize,
		logger:        zerolog.Nop(),
	}
}

// Option configures a Builder.
type Option func(*options)

// WithMaxWordLength sets the exclusive upper bound on word length.
func WithMaxWordLength(n int) Option {
	return func(o *options) { o.maxWordLength = n }
}

// WithMaxEdges caps the number of edges in the finished graph, reserved
// region included.
func WithMaxEdges(n int) Option {
	return func(o *options) { o.maxEdges = n }
}

// WithTableSize sets the number of node table slots. Use a prime.
func WithTableSize(n int) Option {
	return func(o *options) { o.tableSize = n }
}

// WithLogger sets the logger used for build summaries and failures.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func (o options) validate() error {
	switch {
	case o.maxWordLength < 2:
		return fmt.Errorf("%w: max word length %d < 2", ErrInvalidOption, o.maxWordLength)
	case o.maxEdges <= ReservedEdges:
		return fmt.Errorf("%w: max edges %d <= %d", ErrInvalidOption, o.maxEdges, ReservedEdges)
	case o.maxEdges > MaxChild+1:
		return fmt.Errorf("%w: max edges %d > %d", ErrInvalidOption, o.maxEdges, MaxChild+1)
	case o.tableSize < 2:
		return fmt.Errorf("%w: table size %d < 2", ErrInvalidOption, o.tableSize)
	}
	return nil
}

// Package dictbuild compiles a word list into a graph file.
package dictbuild

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/milden6/flatdawg"
	"github.com/milden6/flatdawg/internal/config"
	"github.com/milden6/flatdawg/internal/metrics"
	"github.com/milden6/flatdawg/internal/wordlist"
)

// cancellation is checked once per this many words
const checkEvery = 4096

// Result describes one build.
type Result struct {
	Graph    *flatdawg.Graph
	Stats    flatdawg.Stats
	Rejected int
	Took     time.Duration
}

// Compiler turns word lists into graphs according to a BuildConfig.
type Compiler struct {
	cfg     config.BuildConfig
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// New creates a Compiler. m may be nil.
func New(cfg config.BuildConfig, m *metrics.Metrics, log zerolog.Logger) *Compiler {
	return &Compiler{cfg: cfg, metrics: m, log: log}
}

// Build reads words from r and returns the finished graph. Words that are
// out of order, empty or too long fail the build unless SkipInvalid is set,
// in which case they are logged and counted.
func (c *Compiler) Build(ctx context.Context, r io.Reader) (*Result, error) {
	start := time.Now()

	b := flatdawg.New(append(c.cfg.BuilderOptions(), flatdawg.WithLogger(c.log))...)
	if err := b.Start(); err != nil {
		return nil, fmt.Errorf("start builder: %w", err)
	}

	res := &Result{}
	add := func(line int, word string) error {
		if line%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		err := b.AddWord(word)
		if err == nil {
			return nil
		}
		reason, recoverable := classify(err)
		c.reject(reason)
		if !recoverable || !c.cfg.SkipInvalid {
			return fmt.Errorf("line %d: %w", line, err)
		}
		res.Rejected++
		c.log.Warn().Err(err).Int("line", line).Msg("Skipping word")
		return nil
	}

	if c.cfg.Sort {
		words, err := wordlist.Sorted(r)
		if err != nil {
			return nil, err
		}
		for i, w := range words {
			// line numbers are meaningless after sorting, so report rank
			if err := add(i+1, w); err != nil {
				return nil, err
			}
		}
	} else if err := wordlist.Scan(r, add); err != nil {
		return nil, err
	}

	g, err := b.Finish()
	if err != nil {
		c.reject(metrics.ReasonCapacity)
		return nil, fmt.Errorf("finish graph: %w", err)
	}

	res.Graph = g
	res.Stats = b.Stats()
	res.Took = time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveBuild(res.Stats, res.Took)
	}

	c.log.Info().
		Int("words", res.Stats.Words).
		Int("duplicates", res.Stats.Duplicates).
		Int("rejected", res.Rejected).
		Int("edges", res.Stats.Edges).
		Dur("took", res.Took).
		Msg("Built graph")
	return res, nil
}

// BuildFile builds the configured input, saves the graph to the configured
// output and writes the metrics textfile if one is set.
func (c *Compiler) BuildFile(ctx context.Context) (*Result, error) {
	in, err := wordlist.Open(c.cfg.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	res, err := c.Build(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", c.cfg.Input, err)
	}

	n, err := res.Graph.Save(c.cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", c.cfg.Output, err)
	}
	c.log.Info().Str("file", c.cfg.Output).Int64("bytes", n).Msg("Saved graph")

	if c.cfg.MetricsFile != "" && c.metrics != nil {
		if err := c.metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics %s: %w", c.cfg.MetricsFile, err)
		}
	}
	return res, nil
}

func (c *Compiler) reject(reason string) {
	if c.metrics != nil {
		c.metrics.Reject(reason)
	}
}

// classify maps a builder error to a metrics reason and reports whether the
// builder can keep going after it.
func classify(err error) (string, bool) {
	switch {
	case errors.Is(err, flatdawg.ErrOutOfOrder):
		return metrics.ReasonOrder, true
	case errors.Is(err, flatdawg.ErrWordTooLong):
		return metrics.ReasonTooLong, true
	case errors.Is(err, flatdawg.ErrEmptyWord):
		return metrics.ReasonEmpty, true
	}
	return metrics.ReasonCapacity, false
}

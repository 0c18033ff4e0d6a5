package main

import (
	"github.com/spf13/cobra"

	"github.com/milden6/flatdawg"
	"github.com/milden6/flatdawg/internal/dictbuild"
	"github.com/milden6/flatdawg/internal/metrics"
	"github.com/milden6/flatdawg/internal/watch"
)

func (a *app) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a graph file from a word list",
		Long: `Build reads one word per line and writes a graph file.

Words must be in byte order unless --sort is given. With --watch the
input is rebuilt every time it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := dictbuild.New(a.cfg.Build, metrics.New(), a.log)

			_, err := c.BuildFile(cmd.Context())
			if !a.cfg.Build.Watch {
				return err
			}
			if err != nil {
				a.log.Error().Err(err).Msg("Initial build failed")
			}

			a.log.Info().Str("file", a.cfg.Build.Input).Msg("Watching for changes")
			return watch.Run(cmd.Context(), a.cfg.Build.Input, watch.DefaultDelay, a.log, func() error {
				_, err := c.BuildFile(cmd.Context())
				return err
			})
		},
	}

	f := cmd.Flags()
	f.StringP("input", "i", "-", "word list, - for standard input")
	f.StringP("output", "o", "words.dawg", "graph file to write")
	f.Bool("sort", false, "sort and deduplicate the input first")
	f.Bool("skip-invalid", false, "skip words that cannot be added instead of failing")
	f.String("metrics-file", "", "write build metrics to this file in Prometheus text format")
	f.Bool("watch", false, "rebuild whenever the input changes")
	f.Int("max-word-length", flatdawg.DefaultMaxWordLength, "words must be shorter than this")
	f.Int("max-edges", flatdawg.DefaultMaxEdges, "maximum number of edges in the graph")
	f.Int("table-size", flatdawg.DefaultTableSize, "node table slots, preferably prime")

	for name, key := range map[string]string{
		"input":           "build.input",
		"output":          "build.output",
		"sort":            "build.sort",
		"skip-invalid":    "build.skip_invalid",
		"metrics-file":    "build.metrics_file",
		"watch":           "build.watch",
		"max-word-length": "build.max_word_length",
		"max-edges":       "build.max_edges",
		"table-size":      "build.table_size",
	} {
		bindKey(f, name, key)
	}
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check WORD...",
		Short: "Report whether each word is in the graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadDict()
			if err != nil {
				return err
			}

			missing := 0
			for _, word := range args {
				answer := "yes"
				if !g.ContainsWord(word) {
					answer = "no"
					missing++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", word, answer)
			}
			if missing > 0 {
				return errMissing
			}
			return nil
		},
	}
	dictFlag(cmd)
	return cmd
}

func (a *app) newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the size of a graph file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.loadDict()
			if err != nil {
				return err
			}

			letters := 0
			for c := g.Begin(); !c.IsEnd(); c = c.Next() {
				if c.Edge().Child() != 0 || c.Edge().EndOfWord() {
					letters++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:         %s\n", a.cfg.Serve.Dict)
			fmt.Fprintf(out, "edges:        %d\n", g.NumEdges())
			fmt.Fprintf(out, "root letters: %d\n", letters)
			fmt.Fprintf(out, "bytes:        %d\n", 8+4*g.NumEdges())
			return nil
		},
	}
	dictFlag(cmd)
	return cmd
}

func (a *app) newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every edge of a graph file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.loadDict()
			if err != nil {
				return err
			}
			return g.Dump(cmd.OutOrStdout())
		},
	}
	dictFlag(cmd)
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the structure of a graph file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.loadDict()
			if err != nil {
				return err
			}
			if err := g.Verify(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d edges)\n", a.cfg.Serve.Dict, g.NumEdges())
			return nil
		},
	}
	dictFlag(cmd)
	return cmd
}

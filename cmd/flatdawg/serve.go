package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/milden6/flatdawg/internal/dictbuild"
	"github.com/milden6/flatdawg/internal/metrics"
	"github.com/milden6/flatdawg/internal/server"
	"github.com/milden6/flatdawg/internal/watch"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve word lookups over HTTP",
		Long: `Serve answers GET /v1/words/{word} from a graph file.

With --watch-input the given word list is rebuilt into the graph file
whenever it changes, and the new graph replaces the old one without a
restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.loadDict()
			if err != nil {
				return err
			}

			m := metrics.New()
			srv := server.New(g, m, a.log)

			grp, ctx := errgroup.WithContext(cmd.Context())
			grp.Go(func() error {
				return srv.ListenAndServe(ctx, a.cfg.Serve.Addr)
			})
			if a.cfg.Serve.WatchInput != "" {
				grp.Go(func() error {
					return a.watchInput(ctx, srv, m)
				})
			}
			return grp.Wait()
		},
	}

	f := cmd.Flags()
	dictFlag(cmd)
	f.String("addr", ":8080", "listen address")
	f.String("watch-input", "", "word list to rebuild the graph from when it changes")
	bindKey(f, "addr", "serve.addr")
	bindKey(f, "watch-input", "serve.watch_input")
	return cmd
}

// watchInput rebuilds the served graph from the watched word list using the
// build settings, saving it over the dictionary file.
func (a *app) watchInput(ctx context.Context, srv *server.Server, m *metrics.Metrics) error {
	bc := a.cfg.Build
	bc.Input = a.cfg.Serve.WatchInput
	bc.Output = a.cfg.Serve.Dict
	c := dictbuild.New(bc, m, a.log)

	return watch.Run(ctx, bc.Input, watch.DefaultDelay, a.log, func() error {
		res, err := c.BuildFile(ctx)
		if err != nil {
			return err
		}
		srv.Swap(res.Graph)
		return nil
	})
}

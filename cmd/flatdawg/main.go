// Command flatdawg builds, inspects and serves word graphs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/milden6/flatdawg"
	"github.com/milden6/flatdawg/internal/config"
	"github.com/milden6/flatdawg/internal/logging"
)

// viperKey is the flag annotation naming the config key a flag overrides.
const viperKey = "viper-key"

// errMissing makes check exit non-zero without printing an error.
var errMissing = errors.New("some words were not found")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errMissing) {
			fmt.Fprintln(os.Stderr, "flatdawg:", err)
		}
		os.Exit(1)
	}
}

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "flatdawg",
		Short:         "Build and query compact word graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "path to a config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console or json)")
	bindKey(pf, "log-level", "log.level")
	bindKey(pf, "log-format", "log.format")

	root.AddCommand(
		a.newBuildCmd(),
		a.newCheckCmd(),
		a.newStatsCmd(),
		a.newDumpCmd(),
		a.newVerifyCmd(),
		a.newServeCmd(),
	)
	return root
}

// bindKey marks flag name as an override for a config key. The binding is
// made when the command runs, so several commands can share one key.
func bindKey(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, viperKey, []string{key}); err != nil {
		panic(err)
	}
}

// init binds the running command's flags, loads the configuration and sets
// up logging.
func (a *app) init(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[viperKey]; ok && bindErr == nil {
			bindErr = a.v.BindPFlag(keys[0], f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With().Str("cmd", cmd.Name()).Logger()
	return nil
}

func (a *app) loadDict() (*flatdawg.Graph, error) {
	g, err := flatdawg.Load(a.cfg.Serve.Dict)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.cfg.Serve.Dict, err)
	}
	a.log.Debug().Str("file", a.cfg.Serve.Dict).Int("edges", g.NumEdges()).Msg("Loaded graph")
	return g, nil
}

func dictFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("dict", "d", "words.dawg", "graph file")
	bindKey(cmd.Flags(), "dict", "serve.dict")
}

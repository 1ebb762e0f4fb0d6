package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/rebelay/app"
	"github.com/kilianp07/rebelay/config"
	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/infra/logger"
	_ "github.com/kilianp07/rebelay/infra/metrics" // register sinks
)

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	cfgPath  string
	logLevel string
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "rebelay",
		Short:         "Rope-work timing model and rebelay spacing optimizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", "", "configuration file (yaml or json); defaults and REBELAY_* env vars when empty")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newTimeCmd(c),
		newOptimumCmd(c),
		newPlotCmd(c),
		newExportCmd(c),
		newServeCmd(c),
	)
	return root
}

// Execute runs the CLI. Long-running commands stop on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func (c *cli) load() error {
	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}
	if err := logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// planner builds a Planner reporting to the configured metrics sinks.
func (c *cli) planner() (*app.Planner, error) {
	sink, err := coremetrics.NewMetricsSink(c.cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return app.NewPlanner(c.cfg.RoundTrip(), c.cfg.Sweep.Workers, sink, logger.New("cli")), nil
}

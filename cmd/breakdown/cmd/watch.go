package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"breakdown/internal/monitor"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the clippings folder and break down new articles",
	Long: `Watch the clippings folder for new markdown files and run a breakdown
for each one. Articles already processed in earlier sessions are skipped.

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pipeline, closeTools, err := newPipeline(ctx)
		if err != nil {
			return err
		}
		defer closeTools()

		ledger, err := openLedger()
		if err != nil {
			return err
		}
		defer ledger.Close()

		state, err := monitor.NewState(cfg.StateDir)
		if err != nil {
			return err
		}

		dir := cfg.WatchDir()
		detector := monitor.NewDetector(state, dir, logger)

		run := func(ctx context.Context, path string) error {
			res, err := pipeline.Run(ctx, path)
			recordRun(ledger, res, err)
			return err
		}

		watcher := monitor.NewWatcher(dir, detector, run, logger)
		if err := watcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

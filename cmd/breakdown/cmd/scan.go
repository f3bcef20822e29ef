package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"breakdown/internal/monitor"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Process articles added since the last run, then exit",
	Long: `Scan the clippings folder once for markdown files modified since the
last recorded run and break down each unprocessed one. A failed article
is left unmarked; touch it to queue another attempt.`,
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

		detector := monitor.NewDetector(state, cfg.WatchDir(), logger)
		pending, err := detector.Scan()
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Println("Nothing new to process.")
			return detector.CommitScan(time.Now())
		}

		var failed int
		for _, path := range pending {
			res, runErr := pipeline.Run(ctx, path)
			recordRun(ledger, res, runErr)
			if runErr != nil {
				logger.Error("breakdown failed", "article", path, "error", runErr)
				failed++
				continue
			}
			if err := detector.MarkProcessed(path); err != nil {
				return err
			}
			fmt.Printf("Processed %s (%d steps)\n", path, res.StepsRun)
		}

		if err := detector.CommitScan(time.Now()); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d articles failed", failed, len(pending))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

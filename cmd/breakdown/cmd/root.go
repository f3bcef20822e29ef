package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"breakdown/internal/adapters/claudecli"
	"breakdown/internal/adapters/history"
	"breakdown/internal/adapters/mcpclient"
	"breakdown/internal/agent"
	"breakdown/internal/application"
	"breakdown/internal/config"
	"breakdown/internal/ports"
)

var (
	cfg        config.Config
	logger     *slog.Logger
	vaultFlag  string
	clipFlag   string
	stateFlag  string
	modelFlag  string
	serverFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Break Obsidian articles into linked atomic notes",
	Long: `breakdown watches a vault folder for new articles and decomposes each
one into a summary, per-section notes, and a canvas map, linked back to
the original.

Planning and execution are delegated to the Claude CLI; file operations
go through the breakdown-mcp tool host.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg = config.Load()
		if vaultFlag != "" {
			cfg.VaultPath = vaultFlag
		}
		if clipFlag != "" {
			cfg.ClippingsDir = clipFlag
		}
		if stateFlag != "" {
			cfg.StateDir = stateFlag
		}
		if modelFlag != "" {
			cfg.Model = modelFlag
		}
		if serverFlag != "" {
			parts := strings.Fields(serverFlag)
			cfg.ServerCommand = parts[0]
			cfg.ServerArgs = parts[1:]
		}

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultFlag, "vault", "v", "", "path to the vault (default $BREAKDOWN_VAULT)")
	rootCmd.PersistentFlags().StringVar(&clipFlag, "clippings", "", "vault-relative folder to watch (default Clippings)")
	rootCmd.PersistentFlags().StringVar(&stateFlag, "state-dir", "", "directory for watcher state and run history")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Claude model alias (default sonnet)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "mcp-server", "", "tool host command, e.g. \"breakdown-mcp --vault ~/vault\"")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// newPipeline connects the tool host and builds the planner/executor pair.
// The returned closer shuts the tool host down.
func newPipeline(ctx context.Context) (*application.Pipeline, func() error, error) {
	llm := claudecli.NewClient(claudecli.WithModel(cfg.Model))
	if !llm.IsAvailable() {
		return nil, nil, fmt.Errorf("claude CLI not found in PATH")
	}

	args := cfg.ServerArgs
	if len(args) == 0 {
		args = []string{"--vault", cfg.VaultPath}
	}
	tools, err := mcpclient.Connect(ctx, cfg.ServerCommand, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting tool host: %w", err)
	}

	planner := agent.NewPlanner(llm, agent.WithLogger(logger))
	executor := agent.NewExecutor(llm, tools, agent.WithLogger(logger))
	return application.NewPipeline(planner, executor, logger), tools.Close, nil
}

// recordRun writes one run outcome to the ledger. Ledger failures are
// logged, not fatal; history is an observability aid, not a dependency.
func recordRun(ledger ports.RunLedger, res *application.RunResult, runErr error) {
	rec := &ports.RunRecord{
		Article:    res.Article,
		Folder:     res.Folder,
		Files:      res.StepsRun,
		Status:     res.Status.String(),
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	if err := ledger.Record(rec); err != nil {
		logger.Error("recording run", "article", res.Article, "error", err)
	}
}

func openLedger() (*history.Ledger, error) {
	return history.Open(cfg.StateDir)
}

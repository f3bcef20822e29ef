package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"breakdown/internal/adapters/vaultfs"
	"breakdown/internal/application"
	"breakdown/internal/domain"
)

var direct bool

var runCmd = &cobra.Command{
	Use:   "run <article>",
	Short: "Break down a single article",
	Long: `Break down one article regardless of watcher state. The article is not
marked processed, so a later scan may pick it up again.

With --direct the agents are bypassed: the article is parsed by heading
structure and the documents and canvas are written deterministically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		articlePath := args[0]

		if direct {
			return runDirect(articlePath)
		}

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

		res, runErr := pipeline.Run(ctx, articlePath)
		recordRun(ledger, res, runErr)
		if runErr != nil {
			return runErr
		}
		fmt.Printf("Processed %s (%d steps)\n", articlePath, res.StepsRun)
		return nil
	},
}

// runDirect parses and materializes the article without any model calls.
func runDirect(articlePath string) error {
	content, err := os.ReadFile(articlePath)
	if err != nil {
		return fmt.Errorf("reading article: %w", err)
	}

	tree := domain.ParseArticle(string(content))
	title := strings.TrimSuffix(filepath.Base(articlePath), filepath.Ext(articlePath))

	repo := vaultfs.NewRepository(cfg.VaultPath)
	m := application.NewMaterializer(repo, logger)

	files, err := m.Materialize(tree, title, articlePath)
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f.Path)
	}
	return nil
}

func init() {
	runCmd.Flags().BoolVar(&direct, "direct", false, "materialize without model calls")
	rootCmd.AddCommand(runCmd)
}

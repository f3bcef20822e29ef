package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded breakdown runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedger()
		if err != nil {
			return err
		}
		defer ledger.Close()

		records, err := ledger.List(historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tSTEPS\tARTICLE\tERROR")
		for _, rec := range records {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				rec.ID,
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				rec.Status,
				rec.Files,
				rec.Article,
				rec.Error,
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

var (
	historyStatus string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded backup runs from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		runs, total, err := app.backup.History(cmd.Context(), domain.RunListFilter{
			Status: domain.RunStatus(historyStatus),
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Found %d runs\n\n", total)
		if len(runs) == 0 {
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tARCHIVE\tSTATUS\tSIZE\tERROR")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				r.StartedAt.Format("2006-01-02 15:04:05"), r.ArchiveName, r.Status, r.SizeBytes, r.Error)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "Filter by run status (RUNNING, SUCCEEDED, FAILED)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

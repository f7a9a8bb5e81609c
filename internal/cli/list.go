package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archives in the backup bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		archives, err := app.backup.ListArchives(cmd.Context())
		if err != nil {
			return err
		}

		if len(archives) == 0 {
			fmt.Printf("No archives in bucket '%s'\n", cfg.Storage.Bucket)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tLAST MODIFIED")
		for _, a := range archives {
			fmt.Fprintf(w, "%s\t%d\t%s\n", a.Name, a.SizeBytes, a.LastModified.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

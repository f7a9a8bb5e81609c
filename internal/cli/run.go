package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	runSource string
	runBucket string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compress the model directory and upload the archive",
	Long: `Run one backup: the model directory is zipped into
<dirname>-<YYYYMMDD-HHMMSS>.zip and the archive is copied to the backup
bucket. The run stops at the first failing step; the local archive is kept
in either outcome.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runSource != "" {
			cfg.Backup.SourceDir = runSource
		}
		if runBucket != "" {
			cfg.Storage.Bucket = runBucket
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		app, cleanup, err := buildApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		run, err := app.backup.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Backup uploaded to oss://%s/%s (%d bytes)\n", run.Bucket, run.ArchiveName, run.SizeBytes)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runSource, "source", "s", "", "Model directory to back up (overrides BACKUP_SOURCE_DIR)")
	runCmd.Flags().StringVarP(&runBucket, "bucket", "b", "", "Destination bucket (overrides STORAGE_BUCKET)")
	rootCmd.AddCommand(runCmd)
}

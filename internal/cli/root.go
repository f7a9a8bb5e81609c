package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/archive"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/config"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/logging"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/repository"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/storage"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/usecase"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "modelbackup",
	Short: "Archive a fine-tuned model directory and upload it to object storage",
	Long: `modelbackup compresses a fine-tuned model directory into a timestamped
zip archive and uploads it to the configured backup bucket. Configuration is
read from the environment (BACKUP_*, STORAGE_*, CATALOG_*, LOGGER_*).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return logging.Setup(cfg.Logger)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

type app struct {
	backup *usecase.BackupUseCase
	pool   *pgxpool.Pool // nil when the catalog is disabled or unreachable
}

// buildApp wires the archiver, object store and optional run catalog. The
// returned func releases the catalog pool.
func buildApp(ctx context.Context) (*app, func(), error) {
	store, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, nil, err
	}

	var runs domain.BackupRunRepository
	var pool *pgxpool.Pool
	cleanup := func() {}

	if cfg.Catalog.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Catalog.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("parse catalog config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Catalog.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Catalog.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Catalog.ConnMaxLifetime

		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create catalog pool: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			log.Warnf("catalog unreachable (continuing without catalog): %v", err)
			p.Close()
		} else {
			runs = repository.NewBackupRunRepository(p)
			pool = p
			cleanup = p.Close
			log.Info("backup catalog connected")
		}
	}

	uc := usecase.NewBackupUseCase(archive.NewZipArchiver(), store, runs, cfg.Backup, cfg.Storage.Bucket)
	return &app{backup: uc, pool: pool}, cleanup, nil
}

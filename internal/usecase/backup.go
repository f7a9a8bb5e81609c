package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/config"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

const timestampLayout = "20060102-150405"

// ArchiveName builds the archive filename for a run started at ts:
// "<basename>-<YYYYMMDD-HHMMSS>.zip".
func ArchiveName(sourceDir string, ts time.Time) string {
	return fmt.Sprintf("%s-%s.zip", filepath.Base(filepath.Clean(sourceDir)), ts.Format(timestampLayout))
}

// BackupUseCase runs the compress-then-upload pipeline. The two steps are
// strictly sequential and fail-fast: a compression failure means the upload
// is never attempted, and an upload failure leaves the local archive on disk.
type BackupUseCase struct {
	archiver domain.Archiver
	store    domain.ObjectStore
	runs     domain.BackupRunRepository // nil when the catalog is disabled
	cfg      config.BackupConfig
	bucket   string

	now func() time.Time
}

func NewBackupUseCase(archiver domain.Archiver, store domain.ObjectStore, runs domain.BackupRunRepository, cfg config.BackupConfig, bucket string) *BackupUseCase {
	return &BackupUseCase{
		archiver: archiver,
		store:    store,
		runs:     runs,
		cfg:      cfg,
		bucket:   bucket,
		now:      time.Now,
	}
}

// Run executes one backup. The timestamp is computed once at run start and
// determines the archive name for both the local file and the remote object.
func (uc *BackupUseCase) Run(ctx context.Context) (*domain.BackupRun, error) {
	started := uc.now()
	run := &domain.BackupRun{
		ID:          uuid.New(),
		StartedAt:   started,
		SourceDir:   uc.cfg.SourceDir,
		ArchiveName: ArchiveName(uc.cfg.SourceDir, started),
		Bucket:      uc.bucket,
		Status:      domain.RunStatusRunning,
	}
	run.LocalPath = filepath.Join(uc.cfg.WorkDir, run.ArchiveName)

	if uc.runs != nil {
		if err := uc.runs.Create(ctx, run); err != nil {
			log.Warnf("catalog write failed (continuing without catalog): %v", err)
		}
	}

	log.WithFields(log.Fields{
		"run_id":  run.ID,
		"source":  run.SourceDir,
		"archive": run.ArchiveName,
	}).Info("compressing model directory")

	size, err := uc.archiver.Create(ctx, run.SourceDir, run.LocalPath)
	if err != nil {
		if !errors.Is(err, domain.ErrSourceNotFound) {
			err = fmt.Errorf("%w: %v", domain.ErrCompressionFailed, err)
		}
		return nil, uc.fail(ctx, run, err)
	}
	run.SizeBytes = size

	log.WithFields(log.Fields{
		"run_id":  run.ID,
		"archive": run.ArchiveName,
		"bucket":  run.Bucket,
		"bytes":   size,
	}).Info("uploading archive")

	if err := uc.store.Put(ctx, run.LocalPath, run.ArchiveName); err != nil {
		// The local zip stays on disk so the upload can be redone by hand.
		return nil, uc.fail(ctx, run, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err))
	}

	run.Status = domain.RunStatusSucceeded
	run.FinishedAt = uc.now()
	uc.recordFinish(ctx, run)

	log.WithFields(log.Fields{
		"run_id":  run.ID,
		"archive": run.ArchiveName,
		"bucket":  run.Bucket,
	}).Info("backup completed")
	return run, nil
}

// GetRun looks up a recorded run by id.
func (uc *BackupUseCase) GetRun(ctx context.Context, id uuid.UUID) (*domain.BackupRun, error) {
	if uc.runs == nil {
		return nil, domain.ErrCatalogDisabled
	}
	return uc.runs.GetByID(ctx, id)
}

// History lists recorded runs, newest first.
func (uc *BackupUseCase) History(ctx context.Context, filter domain.RunListFilter) ([]*domain.BackupRun, int, error) {
	if uc.runs == nil {
		return nil, 0, domain.ErrCatalogDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return uc.runs.List(ctx, filter)
}

// ListArchives lists the archives currently in the backup bucket.
func (uc *BackupUseCase) ListArchives(ctx context.Context) ([]domain.RemoteArchive, error) {
	return uc.store.List(ctx)
}

func (uc *BackupUseCase) fail(ctx context.Context, run *domain.BackupRun, err error) error {
	run.Status = domain.RunStatusFailed
	run.Error = err.Error()
	run.FinishedAt = uc.now()
	uc.recordFinish(ctx, run)
	return err
}

func (uc *BackupUseCase) recordFinish(ctx context.Context, run *domain.BackupRun) {
	if uc.runs == nil {
		return
	}
	if err := uc.runs.Update(ctx, run); err != nil {
		log.Warnf("catalog update failed: %v", err)
	}
}

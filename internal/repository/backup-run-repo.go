package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

// Schema:
//
//	CREATE TABLE model_backup_run (
//	    id           UUID PRIMARY KEY,
//	    started_at   TIMESTAMPTZ NOT NULL,
//	    finished_at  TIMESTAMPTZ,
//	    source_dir   TEXT NOT NULL,
//	    archive_name TEXT NOT NULL,
//	    local_path   TEXT NOT NULL,
//	    size_bytes   BIGINT NOT NULL DEFAULT 0,
//	    bucket       TEXT NOT NULL,
//	    status       TEXT NOT NULL,
//	    error        TEXT NOT NULL DEFAULT ''
//	);
type backupRunRepo struct {
	pool *pgxpool.Pool
}

func NewBackupRunRepository(pool *pgxpool.Pool) domain.BackupRunRepository {
	return &backupRunRepo{pool: pool}
}

func (r *backupRunRepo) Create(ctx context.Context, run *domain.BackupRun) error {
	query := `
		INSERT INTO model_backup_run
			(id, started_at, finished_at, source_dir, archive_name,
			 local_path, size_bytes, bucket, status, error)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`

	_, err := r.pool.Exec(ctx, query,
		run.ID, run.StartedAt, run.FinishedAt,
		run.SourceDir, run.ArchiveName, run.LocalPath,
		run.SizeBytes, run.Bucket, string(run.Status), run.Error,
	)
	if err != nil {
		return fmt.Errorf("create backup run: %w", err)
	}
	return nil
}

func (r *backupRunRepo) Update(ctx context.Context, run *domain.BackupRun) error {
	query := `
		UPDATE model_backup_run
		SET finished_at = $2, size_bytes = $3, status = $4, error = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		run.ID, run.FinishedAt, run.SizeBytes, string(run.Status), run.Error,
	)
	if err != nil {
		return fmt.Errorf("update backup run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRunNotFound
	}
	return nil
}

func (r *backupRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BackupRun, error) {
	query := `
		SELECT id, started_at, finished_at, source_dir, archive_name,
		       local_path, size_bytes, bucket, status, error
		FROM model_backup_run
		WHERE id = $1
	`

	run, err := scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}
		return nil, fmt.Errorf("get backup run by id: %w", err)
	}
	return run, nil
}

func (r *backupRunRepo) List(ctx context.Context, filter domain.RunListFilter) ([]*domain.BackupRun, int, error) {
	conditions := "TRUE"
	args := []interface{}{}
	if filter.Status != "" {
		conditions = "status = $1"
		args = append(args, string(filter.Status))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM model_backup_run WHERE %s`, conditions)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count backup runs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, started_at, finished_at, source_dir, archive_name,
		       local_path, size_bytes, bucket, status, error
		FROM model_backup_run
		WHERE %s
		ORDER BY started_at DESC
		LIMIT $%d OFFSET $%d
	`, conditions, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list backup runs: %w", err)
	}
	defer rows.Close()

	runs := []*domain.BackupRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan backup run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list backup runs: %w", err)
	}

	return runs, total, nil
}

func scanRun(row pgx.Row) (*domain.BackupRun, error) {
	var run domain.BackupRun
	var status string
	err := row.Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt,
		&run.SourceDir, &run.ArchiveName, &run.LocalPath,
		&run.SizeBytes, &run.Bucket, &status, &run.Error,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	return &run, nil
}

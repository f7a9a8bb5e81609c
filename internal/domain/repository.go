package domain

import (
	"context"

	"github.com/google/uuid"
)

type RunListFilter struct {
	Status RunStatus
	Limit  int
	Offset int
}

type BackupRunRepository interface {
	Create(ctx context.Context, run *BackupRun) error
	Update(ctx context.Context, run *BackupRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*BackupRun, error)
	List(ctx context.Context, filter RunListFilter) ([]*BackupRun, int, error)
}

package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

// MockArchiver is a mock of Archiver.
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Create(ctx context.Context, sourceDir, outPath string) (int64, error) {
	args := m.Called(ctx, sourceDir, outPath)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStore is a mock of ObjectStore.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, localPath, objectName string) error {
	args := m.Called(ctx, localPath, objectName)
	return args.Error(0)
}

func (m *MockObjectStore) List(ctx context.Context) ([]domain.RemoteArchive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteArchive), args.Error(1)
}

// MockBackupRunRepo is a mock of BackupRunRepository.
type MockBackupRunRepo struct {
	mock.Mock
}

func (m *MockBackupRunRepo) Create(ctx context.Context, run *domain.BackupRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockBackupRunRepo) Update(ctx context.Context, run *domain.BackupRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockBackupRunRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.BackupRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BackupRun), args.Error(1)
}

func (m *MockBackupRunRepo) List(ctx context.Context, filter domain.RunListFilter) ([]*domain.BackupRun, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.BackupRun), args.Int(1), args.Error(2)
}

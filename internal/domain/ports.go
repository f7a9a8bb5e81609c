package domain

import "context"

// Archiver produces a compressed snapshot of a directory.
type Archiver interface {
	// Create archives sourceDir recursively into outPath and returns the
	// size of the resulting file in bytes.
	Create(ctx context.Context, sourceDir, outPath string) (int64, error)
}

// ObjectStore copies local archives to the remote backup bucket.
type ObjectStore interface {
	Put(ctx context.Context, localPath, objectName string) error
	List(ctx context.Context) ([]RemoteArchive, error)
}

package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/config"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

// Store implements domain.ObjectStore against an S3-compatible endpoint.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

func New(cfg *config.StorageConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (s *Store) Put(ctx context.Context, localPath, objectName string) error {
	key := s.key(objectName)
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: "application/zip",
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.RemoteArchive, error) {
	archives := []domain.RemoteArchive{}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects: %w", obj.Err)
		}
		name := obj.Key
		if s.prefix != "" {
			name = strings.TrimPrefix(name, s.prefix+"/")
		}
		archives = append(archives, domain.RemoteArchive{
			Name:         name,
			SizeBytes:    obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return archives, nil
}

func (s *Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "Qwen3-14b-finetuned-merged", cfg.Backup.SourceDir)
	assert.Equal(t, ".", cfg.Backup.WorkDir)
	assert.Equal(t, "backup", cfg.Storage.Bucket)
	assert.False(t, cfg.Catalog.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKUP_SOURCE_DIR", "/data/other-model")
	t.Setenv("STORAGE_BUCKET", "backup-dr")
	t.Setenv("CATALOG_ENABLED", "true")
	t.Setenv("CATALOG_CONN_MAX_LIFETIME", "5m")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "/data/other-model", cfg.Backup.SourceDir)
	assert.Equal(t, "backup-dr", cfg.Storage.Bucket)
	assert.True(t, cfg.Catalog.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.ConnMaxLifetime)
}

func TestCatalogDSN(t *testing.T) {
	c := CatalogConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "secret",
		Database: "model_backup", SSLMode: "disable",
	}
	assert.Equal(t, "postgres://postgres:secret@db:5432/model_backup?sslmode=disable", c.DSN())
}

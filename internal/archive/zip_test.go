package archive

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

func TestZipArchiver_Create(t *testing.T) {
	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "config.json"), []byte(`{"dim":4096}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(source, "weights"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, "weights", "model.safetensors"), []byte("tensor-bytes"), 0o644))

	outPath := filepath.Join(t.TempDir(), "out.zip")
	size, err := NewZipArchiver().Create(context.Background(), source, outPath)
	require.NoError(t, err)

	st, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, st.Size(), size)

	r, err := zip.OpenReader(outPath)
	require.NoError(t, err)
	defer r.Close()

	contents := map[string]string{}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			contents[f.Name] = ""
			assert.Equal(t, zip.Store, f.Method)
			continue
		}
		assert.Equal(t, zip.Deflate, f.Method)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		contents[f.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"config.json":               `{"dim":4096}`,
		"weights/":                  "",
		"weights/model.safetensors": "tensor-bytes",
	}, contents)
}

func TestZipArchiver_Create_MissingSource(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.zip")
	_, err := NewZipArchiver().Create(context.Background(), filepath.Join(t.TempDir(), "missing"), outPath)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	// The archive file is never created for a missing source.
	_, err = os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))
}

func TestZipArchiver_Create_SourceIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewZipArchiver().Create(context.Background(), file, filepath.Join(dir, "out.zip"))
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestZipArchiver_Create_Cancelled(t *testing.T) {
	source := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(source, "a"), []byte("a"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewZipArchiver().Create(ctx, source, filepath.Join(t.TempDir(), "out.zip"))
	assert.ErrorIs(t, err, context.Canceled)
}

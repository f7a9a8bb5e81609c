package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
)

// ZipArchiver implements domain.Archiver using the zip format: Deflate for
// regular files, Store for directory entries, paths relative to the source
// directory with forward slashes.
type ZipArchiver struct{}

func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

func (a *ZipArchiver) Create(ctx context.Context, sourceDir, outPath string) (int64, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%s: %w", sourceDir, domain.ErrSourceNotFound)
		}
		return 0, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory: %w", sourceDir, domain.ErrSourceNotFound)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create archive file: %w", err)
	}

	zw := zip.NewWriter(out)

	err = filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)

		if info.IsDir() {
			header.Name += "/"
			header.Method = zip.Store
		} else {
			header.Method = zip.Deflate
		}

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		out.Close()
		return 0, fmt.Errorf("add files to archive: %w", err)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return 0, fmt.Errorf("finalize archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close archive file: %w", err)
	}

	st, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat archive file: %w", err)
	}
	return st.Size(), nil
}

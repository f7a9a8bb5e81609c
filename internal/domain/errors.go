package domain

import "errors"

var (
	ErrSourceNotFound    = errors.New("source directory does not exist")
	ErrCompressionFailed = errors.New("archive creation failed")
	ErrUploadFailed      = errors.New("archive upload failed")
	ErrRunNotFound       = errors.New("backup run not found")
	ErrCatalogDisabled   = errors.New("backup catalog is disabled")
)

// Package storage provides temporary and persistent file storage capabilities
// for a clipping run. It defines the Storage interface (port) and
// implementations for local disk and S3-backed clip delivery.
package storage

import (
	"context"
	"io"
)

// Storage defines the interface for the file lifecycle of one run:
// intermediate artifacts in a temp directory, the output clip directory,
// and optional upload of finished clips.
type Storage interface {
	// TempFile creates an empty temporary file from a CreateTemp-style
	// pattern (for example "audio_*.raw") and returns its path. External
	// tools may subsequently overwrite the file in place.
	TempFile(pattern string) (string, error)

	// EnsureDir creates the directory (and parents) if it does not exist.
	EnsureDir(path string) error

	// CleanupTemp removes the specified temporary files.
	// It continues cleanup even if some files fail to delete.
	CleanupTemp(ctx context.Context, paths []string) error

	// UploadClip uploads a finished clip to S3 and returns its public URL.
	// Returns ErrS3NotConfigured if S3 is not configured.
	UploadClip(ctx context.Context, key string, data io.Reader) (url string, err error)
}

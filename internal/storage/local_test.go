package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("creates directory if not exists", func(t *testing.T) {
		tempDir := filepath.Join(os.TempDir(), "loudcut_test_"+randomSuffix())
		defer func() { _ = os.RemoveAll(tempDir) }()

		storage, err := NewLocalStorage(tempDir)
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		if storage.TempDir() != tempDir {
			t.Errorf("TempDir() = %v, want %v", storage.TempDir(), tempDir)
		}

		info, err := os.Stat(tempDir)
		if err != nil {
			t.Fatalf("directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("uses default directory when empty", func(t *testing.T) {
		storage, err := NewLocalStorage("")
		if err != nil {
			t.Fatalf("NewLocalStorage() error = %v", err)
		}

		expected := filepath.Join(os.TempDir(), "loudcut")
		if storage.TempDir() != expected {
			t.Errorf("TempDir() = %v, want %v", storage.TempDir(), expected)
		}
	})
}

func TestLocalStorage_TempFile(t *testing.T) {
	storage := setupTestStorage(t)

	t.Run("creates file with pattern", func(t *testing.T) {
		path, err := storage.TempFile("audio_*.raw")
		if err != nil {
			t.Fatalf("TempFile() error = %v", err)
		}
		defer func() { _ = os.Remove(path) }()

		if !strings.HasPrefix(filepath.Base(path), "audio_") {
			t.Errorf("path %s should start with 'audio_'", filepath.Base(path))
		}
		if !strings.HasSuffix(path, ".raw") {
			t.Errorf("path %s should keep the .raw extension", path)
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("temp file should exist: %v", err)
		}
	})

	t.Run("files are unique", func(t *testing.T) {
		a, err := storage.TempFile("clip_*.mp4")
		if err != nil {
			t.Fatalf("TempFile() error = %v", err)
		}
		b, err := storage.TempFile("clip_*.mp4")
		if err != nil {
			t.Fatalf("TempFile() error = %v", err)
		}
		defer func() { _ = os.Remove(a); _ = os.Remove(b) }()

		if a == b {
			t.Errorf("expected unique paths, got %s twice", a)
		}
	})
}

func TestLocalStorage_EnsureDir(t *testing.T) {
	storage := setupTestStorage(t)

	t.Run("creates nested directory", func(t *testing.T) {
		dir := filepath.Join(storage.TempDir(), "out", "clips")
		if err := storage.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error = %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("directory not created: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("idempotent for existing directory", func(t *testing.T) {
		dir := filepath.Join(storage.TempDir(), "existing")
		if err := storage.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error = %v", err)
		}
		if err := storage.EnsureDir(dir); err != nil {
			t.Errorf("EnsureDir() on existing dir error = %v", err)
		}
	})
}

func TestLocalStorage_CleanupTemp(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	t.Run("removes files", func(t *testing.T) {
		var paths []string
		for i := 0; i < 3; i++ {
			path, err := storage.TempFile("cleanup_*")
			if err != nil {
				t.Fatalf("TempFile() error = %v", err)
			}
			paths = append(paths, path)
		}

		err := storage.CleanupTemp(ctx, paths)
		if err != nil {
			t.Fatalf("CleanupTemp() error = %v", err)
		}

		for _, p := range paths {
			if _, err := os.Stat(p); !os.IsNotExist(err) {
				t.Errorf("file %s still exists", p)
			}
		}
	})

	t.Run("ignores non-existent files", func(t *testing.T) {
		err := storage.CleanupTemp(ctx, []string{"/non/existent/file"})
		if err != nil {
			t.Errorf("CleanupTemp() should ignore non-existent files, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		err := storage.CleanupTemp(cancelled, []string{"/some/path"})
		if err == nil {
			t.Error("expected error with cancelled context")
		}
	})
}

func TestLocalStorage_UploadClip(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	_, err := storage.UploadClip(ctx, "key", bytes.NewReader([]byte("data")))
	if err != ErrS3NotConfigured {
		t.Errorf("expected ErrS3NotConfigured, got %v", err)
	}
}

func setupTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	tempDir := filepath.Join(os.TempDir(), "loudcut_test_"+randomSuffix())
	t.Cleanup(func() { _ = os.RemoveAll(tempDir) })

	storage, err := NewLocalStorage(tempDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return storage
}

func randomSuffix() string {
	return time.Now().Format("20060102150405.000000000")
}

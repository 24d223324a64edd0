package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      fullDir,
		}
	}
	return nil
}

// WriteFileAtomic writes data to a sibling temp file and renames it over path,
// so readers never observe a half-written file. The parent directory is
// created when missing.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) failure.ClassifiedError {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FileError{
			Message: fmt.Sprintf("create temp file: %v", err),
			Cause:   ErrCauseWriteError,
			Path:    path,
		}
	}
	tmpName := tmp.Name()

	// the temp file is left behind only if rename itself fails after this point
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return &FileError{
			Message: fmt.Sprintf("write temp file: %v", err),
			Cause:   ErrCauseWriteError,
			Path:    path,
		}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &FileError{
			Message: fmt.Sprintf("close temp file: %v", err),
			Cause:   ErrCauseWriteError,
			Path:    path,
		}
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return &FileError{
			Message: fmt.Sprintf("chmod temp file: %v", err),
			Cause:   ErrCauseWriteError,
			Path:    path,
		}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &FileError{
			Message: fmt.Sprintf("rename temp file: %v", err),
			Cause:   ErrCauseWriteError,
			Path:    path,
		}
	}
	return nil
}

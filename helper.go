package texgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
)

// Save encodes pixels and writes the PNG to filePath.
// Nothing is written unless encoding succeeds.
func Save(filePath string, width, height int, pixels PixelGrid) error {
	b, err := Encode(width, height, pixels)
	if err != nil {
		return err
	}
	return WriteFile(filePath, b)
}

// WriteFile writes b to filePath through a temporary file in the same directory,
// so a failed write never leaves a truncated file behind. Parent directories are created.
func WriteFile(filePath string, b []byte) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", filePath, err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", filePath, err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		return fmt.Errorf("failed to rename into %s: %w", filePath, err)
	}
	return nil
}

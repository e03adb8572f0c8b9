package chordpro

import (
	"fmt"
	"os"
	"path/filepath"
)

const tempFilePrefix = "chordpro-input-"

func tempInputPath(dir, id string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, tempFilePrefix+id+".cho")
}

// stageSong writes content to a fresh file at path. The file must not exist
// yet; every invocation gets its own name.
func stageSong(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	return nil
}

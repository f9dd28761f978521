package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write persists the report text under folder/filename, creating the folder
// when missing and overwriting any previous report. It returns the path that
// was written.
func Write(folder, filename, text string) (string, error) {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create report folder: %w", err)
	}

	path := filepath.Join(folder, filename)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	return path, nil
}

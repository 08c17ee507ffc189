// Package ingest turns a source file into a single plain-text string.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadText loads the practice text for a source path. EPUB containers are
// unpacked chapter by chapter; everything else is read as plain text. PDF
// sources are rejected.
func ReadText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		return readEPUB(path)
	case ".pdf":
		return "", fmt.Errorf("pdf sources are not supported: %s", path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read practice text: %w", err)
		}
		return string(data), nil
	}
}

// Package export writes conversation snapshots as downloadable JSON
// documents. Export is one-way; there is no import path.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"autc/internal/models"
)

// WriteSession writes the document into dir under a timestamped name and
// returns the full path.
func WriteSession(dir string, doc models.SessionExport) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("autc-session-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

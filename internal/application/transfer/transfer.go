// Package transfer implements the JSON import/export contract: a
// single document with exactly three top-level keys, tasks, categories
// and projects.
package transfer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
)

// Export encodes the three collections as a single JSON document.
func Export(snap entities.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export document: %w", err)
	}
	return data, nil
}

// ExportFilename names an export file with the export date embedded.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("taskmanager-export-%s.json", now.Format("2006-01-02"))
}

// Import parses an export document. All three keys must be present; on
// parse failure or missing keys it returns an error without producing a
// partial snapshot, so callers can leave existing state untouched.
func Import(data []byte) (entities.Snapshot, error) {
	var doc struct {
		Tasks      *[]entities.Task     `json:"tasks"`
		Categories *[]entities.Category `json:"categories"`
		Projects   *[]entities.Project  `json:"projects"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return entities.Snapshot{}, fmt.Errorf("parse import document: %w", err)
	}

	if doc.Tasks == nil || doc.Categories == nil || doc.Projects == nil {
		return entities.Snapshot{}, entities.ErrMalformedImport
	}

	return entities.Snapshot{
		Tasks:      *doc.Tasks,
		Categories: *doc.Categories,
		Projects:   *doc.Projects,
	}, nil
}

package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/domain/entities"
)

func TestExportImportRoundTrip(t *testing.T) {
	due := time.Date(2026, 9, 4, 9, 0, 0, 0, time.UTC)
	parent := "t1"
	project := "p1"
	description := "the big one"
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	original := entities.Snapshot{
		Tasks: []entities.Task{
			{
				ID: "t1", Title: "Write report", DueDate: &due,
				Status: entities.TaskStatusPending, Categories: []string{"c1"},
				ProjectID: &project, CreatedAt: created, UpdatedAt: created,
			},
			{
				ID: "t2", Title: "Draft outline", ParentID: &parent,
				Status: entities.TaskStatusCompleted, CreatedAt: created, UpdatedAt: created,
			},
		},
		Categories: []entities.Category{{ID: "c1", Name: "Work", Color: "#F59E0B"}},
		Projects:   []entities.Project{{ID: "p1", Name: "Launch", Description: &description}},
	}

	data, err := Export(original)
	require.NoError(t, err)

	restored, err := Import(data)
	require.NoError(t, err)

	assert.Equal(t, original, restored)
}

func TestImportRejectsMissingKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing projects", `{"tasks": [], "categories": []}`},
		{"missing categories", `{"tasks": [], "projects": []}`},
		{"missing tasks", `{"categories": [], "projects": []}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.doc))
			assert.ErrorIs(t, err, entities.ErrMalformedImport)
		})
	}
}

func TestImportRejectsUnparseableDocument(t *testing.T) {
	_, err := Import([]byte(`{not json`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrMalformedImport)
}

func TestExportFilenameEmbedsDate(t *testing.T) {
	now := time.Date(2025, 4, 27, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "taskmanager-export-2025-04-27.json", ExportFilename(now))
}

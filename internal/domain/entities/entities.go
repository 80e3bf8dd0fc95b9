package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNestedSubtask    = errors.New("subtasks cannot have their own subtasks")
	ErrMalformedImport  = errors.New("import document is missing required collections")
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task represents a user-created work item. A task may nest one level
// under a parent and carry any number of category ids plus at most one
// project id; a nil ProjectID means "no project".
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Status     TaskStatus `json:"status"`
	ParentID   *string    `json:"parentId,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	ProjectID  *string    `json:"projectId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Category represents a named, colored label usable on any number of tasks.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Project represents a named grouping with an optional description.
type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Snapshot holds a point-in-time copy of all three collections. It is
// also the on-disk and import/export document shape.
type Snapshot struct {
	Tasks      []Task     `json:"tasks"`
	Categories []Category `json:"categories"`
	Projects   []Project  `json:"projects"`
}

func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

func (t *Task) IsTopLevel() bool {
	return t.ParentID == nil
}

func (t *Task) HasCategory(categoryID string) bool {
	for _, id := range t.Categories {
		if id == categoryID {
			return true
		}
	}
	return false
}

func (t *Task) InProject(projectID string) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// Toggle flips the task between pending and completed.
func (t *Task) Toggle() {
	if t.Status == TaskStatusCompleted {
		t.Status = TaskStatusPending
	} else {
		t.Status = TaskStatusCompleted
	}
}

// IsDueOn reports whether the task's due date falls on the same
// calendar day as the given day, ignoring time of day.
func (t *Task) IsDueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	y1, m1, d1 := t.DueDate.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// CalendarEvent is the narrow read contract consumed from the external
// calendar provider. Location may be empty.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Summary  string    `json:"summary"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Location string    `json:"location,omitempty"`
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusPending, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// DefaultCategories returns the starter categories seeded into a fresh
// state database.
func DefaultCategories() []Category {
	return []Category{
		{ID: "1", Name: "Work", Color: "#F59E0B"},
		{ID: "2", Name: "Personal", Color: "#10B981"},
		{ID: "3", Name: "Other", Color: "#3B82F6"},
	}
}

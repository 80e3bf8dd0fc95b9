package ports

import (
	"context"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
)

// Collection keys used by the state store.
const (
	KeyTasks      = "tasks"
	KeyCategories = "categories"
	KeyProjects   = "projects"
)

// Optional marks an update field as provided. The zero value means
// "leave unchanged". For nullable fields the value type is itself a
// pointer, so Some[*T](nil) means "explicitly clear" while an unset
// Optional leaves the prior value alone.
type Optional[T any] struct {
	set   bool
	value T
}

// Some wraps a provided value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

// Get returns the value and whether it was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the field was provided.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// CreateTaskRequest carries the fields for a new task. Validation runs
// at the boundary; the store additionally rejects blank titles.
type CreateTaskRequest struct {
	Title       string `validate:"required"`
	DueDate     *time.Time
	ParentID    *string
	CategoryIDs []string
	ProjectID   *string
}

// UpdateTaskRequest is a whole-field patch. Unset fields leave the
// prior value unchanged; DueDate and ProjectID distinguish "set to a
// value" from "explicitly cleared".
type UpdateTaskRequest struct {
	Title       Optional[string]
	DueDate     Optional[*time.Time]
	CategoryIDs Optional[[]string]
	ProjectID   Optional[*string]
}

type CreateCategoryRequest struct {
	Name  string `validate:"required"`
	Color string `validate:"required,hexcolor"`
}

type UpdateCategoryRequest struct {
	Name  Optional[string]
	Color Optional[string]
}

type CreateProjectRequest struct {
	Name        string `validate:"required"`
	Description *string
}

type UpdateProjectRequest struct {
	Name        Optional[string]
	Description Optional[*string]
}

// StateStore is the durable key-value round-trip for the three
// collections. Load never fails on malformed stored values; it
// recovers to empty collections and reports only I/O level errors.
type StateStore interface {
	Load(ctx context.Context) (entities.Snapshot, error)
	Save(ctx context.Context, key string, collection any) error
	Close() error
}

// CalendarProvider is the read contract of the external calendar
// collaborator. Implementations never block task CRUD; callers treat a
// failed fetch as an empty result with its own error state.
type CalendarProvider interface {
	Events(ctx context.Context, start, end time.Time) ([]entities.CalendarEvent, error)
}

package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

// Store is the single source of truth for tasks, categories and
// projects. Collections keep insertion order; every successful mutation
// writes through to the state store. Write-through failures are logged
// and never returned to the caller. Mutations against an unknown id are
// silent no-ops.
type Store struct {
	mu sync.Mutex

	tasks      []entities.Task
	categories []entities.Category
	projects   []entities.Project

	state ports.StateStore
	log   *logger.Logger

	projectDeletedHooks []func(projectID string)
}

// New creates an empty store bound to a state store.
func New(state ports.StateStore, log *logger.Logger) *Store {
	return &Store{
		tasks:      []entities.Task{},
		categories: []entities.Category{},
		projects:   []entities.Project{},
		state:      state,
		log:        log.WithComponent("store"),
	}
}

// Hydrate loads the persisted collections into memory.
func (s *Store) Hydrate(ctx context.Context) error {
	snap, err := s.state.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = snap.Tasks
	s.categories = snap.Categories
	s.projects = snap.Projects
	return nil
}

// OnProjectDeleted registers a hook fired after a project delete
// cascade, so consumers holding an active project filter can clear it.
func (s *Store) OnProjectDeleted(fn func(projectID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projectDeletedHooks = append(s.projectDeletedHooks, fn)
}

// Snapshot returns a copy of all three collections.
func (s *Store) Snapshot() entities.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() entities.Snapshot {
	snap := entities.Snapshot{
		Tasks:      make([]entities.Task, len(s.tasks)),
		Categories: make([]entities.Category, len(s.categories)),
		Projects:   make([]entities.Project, len(s.projects)),
	}
	copy(snap.Categories, s.categories)
	copy(snap.Projects, s.projects)
	for i, t := range s.tasks {
		if t.Categories != nil {
			t.Categories = append([]string(nil), t.Categories...)
		}
		snap.Tasks[i] = t
	}
	return snap
}

// Replace wholesale-replaces the in-memory and persisted collections.
// Used by import.
func (s *Store) Replace(ctx context.Context, snap entities.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]entities.Task{}, snap.Tasks...)
	s.categories = append([]entities.Category{}, snap.Categories...)
	s.projects = append([]entities.Project{}, snap.Projects...)

	s.persist(ctx, ports.KeyTasks)
	s.persist(ctx, ports.KeyCategories)
	s.persist(ctx, ports.KeyProjects)
}

// AddTask creates a pending task. A blank title or an invalid parent
// reference rejects the request without creating anything. Subtasks of
// subtasks are rejected; the hierarchy is one level deep.
func (s *Store) AddTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, entities.ErrEmptyTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ParentID != nil {
		parent := s.findTaskLocked(*req.ParentID)
		if parent == nil {
			return nil, entities.ErrTaskNotFound
		}
		if parent.ParentID != nil {
			return nil, entities.ErrNestedSubtask
		}
	}

	now := time.Now()
	task := entities.Task{
		ID:         uuid.NewString(),
		Title:      req.Title,
		DueDate:    req.DueDate,
		Status:     entities.TaskStatusPending,
		ParentID:   req.ParentID,
		Categories: append([]string(nil), req.CategoryIDs...),
		ProjectID:  req.ProjectID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.tasks = append(s.tasks, task)
	s.persist(ctx, ports.KeyTasks)

	s.log.Infow("Task created", "task_id", task.ID, "title", task.Title)

	return &task, nil
}

// UpdateTask applies a whole-field patch to a task. Unset fields keep
// their prior value; no-op if the id is unknown.
func (s *Store) UpdateTask(ctx context.Context, id string, req ports.UpdateTaskRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(id)
	if task == nil {
		return
	}

	if title, ok := req.Title.Get(); ok {
		if strings.TrimSpace(title) == "" {
			return
		}
		task.Title = title
	}
	if due, ok := req.DueDate.Get(); ok {
		task.DueDate = due
	}
	if categories, ok := req.CategoryIDs.Get(); ok {
		task.Categories = append([]string(nil), categories...)
	}
	if projectID, ok := req.ProjectID.Get(); ok {
		task.ProjectID = projectID
	}
	task.UpdatedAt = time.Now()

	s.persist(ctx, ports.KeyTasks)

	s.log.Infow("Task updated", "task_id", id)
}

// ToggleTaskStatus flips a task between pending and completed.
func (s *Store) ToggleTaskStatus(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.findTaskLocked(id)
	if task == nil {
		return
	}

	task.Toggle()
	task.UpdatedAt = time.Now()
	s.persist(ctx, ports.KeyTasks)

	s.log.Infow("Task status toggled", "task_id", id, "status", task.Status)
}

// DeleteTask removes a task and its direct children.
func (s *Store) DeleteTask(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTaskLocked(id) == nil {
		return
	}

	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.ID == id || (t.ParentID != nil && *t.ParentID == id) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	s.persist(ctx, ports.KeyTasks)

	s.log.Infow("Task deleted", "task_id", id, "removed", removed)
}

// AddCategory creates a category.
func (s *Store) AddCategory(ctx context.Context, req ports.CreateCategoryRequest) (*entities.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, entities.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category := entities.Category{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Color: req.Color,
	}
	s.categories = append(s.categories, category)
	s.persist(ctx, ports.KeyCategories)

	s.log.Infow("Category created", "category_id", category.ID, "name", category.Name)

	return &category, nil
}

// UpdateCategory applies a patch to a category; no-op if absent.
func (s *Store) UpdateCategory(ctx context.Context, id string, req ports.UpdateCategoryRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		if name, ok := req.Name.Get(); ok {
			s.categories[i].Name = name
		}
		if color, ok := req.Color.Get(); ok {
			s.categories[i].Color = color
		}
		s.persist(ctx, ports.KeyCategories)
		return
	}
}

// DeleteCategory removes a category and strips its id from every task.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return
	}
	s.categories = kept

	tasksChanged := false
	for i := range s.tasks {
		if !s.tasks[i].HasCategory(id) {
			continue
		}
		stripped := s.tasks[i].Categories[:0:0]
		for _, cid := range s.tasks[i].Categories {
			if cid != id {
				stripped = append(stripped, cid)
			}
		}
		s.tasks[i].Categories = stripped
		tasksChanged = true
	}

	s.persist(ctx, ports.KeyCategories)
	if tasksChanged {
		s.persist(ctx, ports.KeyTasks)
	}

	s.log.Infow("Category deleted", "category_id", id)
}

// AddProject creates a project.
func (s *Store) AddProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, entities.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project := entities.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
	}
	s.projects = append(s.projects, project)
	s.persist(ctx, ports.KeyProjects)

	s.log.Infow("Project created", "project_id", project.ID, "name", project.Name)

	return &project, nil
}

// UpdateProject applies a patch to a project; no-op if absent.
func (s *Store) UpdateProject(ctx context.Context, id string, req ports.UpdateProjectRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		if name, ok := req.Name.Get(); ok {
			s.projects[i].Name = name
		}
		if description, ok := req.Description.Get(); ok {
			s.projects[i].Description = description
		}
		s.persist(ctx, ports.KeyProjects)
		return
	}
}

// DeleteProject removes a project and resets every referencing task to
// "no project", then fires the project-deleted hooks.
func (s *Store) DeleteProject(ctx context.Context, id string) {
	s.mu.Lock()

	found := false
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.projects = kept

	tasksChanged := false
	for i := range s.tasks {
		if s.tasks[i].InProject(id) {
			s.tasks[i].ProjectID = nil
			tasksChanged = true
		}
	}

	s.persist(ctx, ports.KeyProjects)
	if tasksChanged {
		s.persist(ctx, ports.KeyTasks)
	}
	hooks := append([]func(string){}, s.projectDeletedHooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}

	s.log.Infow("Project deleted", "project_id", id)
}

func (s *Store) findTaskLocked(id string) *entities.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// persist writes a collection through to durable storage. Best effort:
// a failed write is logged, not returned.
func (s *Store) persist(ctx context.Context, key string) {
	var err error
	switch key {
	case ports.KeyTasks:
		err = s.state.Save(ctx, key, s.tasks)
	case ports.KeyCategories:
		err = s.state.Save(ctx, key, s.categories)
	case ports.KeyProjects:
		err = s.state.Save(ctx, key, s.projects)
	}
	if err != nil {
		s.log.Errorw("State write-through failed", "key", key, "error", err)
	}
}

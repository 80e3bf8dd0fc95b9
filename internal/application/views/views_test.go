package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdesk/core/internal/domain/entities"
)

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func TestBucketizeIsAPartition(t *testing.T) {
	now := time.Date(2026, 8, 30, 14, 30, 0, 0, time.Local)
	startOfToday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	tasks := []entities.Task{
		{ID: "overdue", Status: entities.TaskStatusPending, DueDate: timePtr(now.AddDate(0, 0, -2))},
		{ID: "midnight", Status: entities.TaskStatusPending, DueDate: timePtr(startOfToday)},
		{ID: "later-today", Status: entities.TaskStatusPending, DueDate: timePtr(now.Add(2 * time.Hour))},
		{ID: "tomorrow", Status: entities.TaskStatusPending, DueDate: timePtr(now.AddDate(0, 0, 1))},
		{ID: "undated", Status: entities.TaskStatusPending},
		{ID: "done-overdue", Status: entities.TaskStatusCompleted, DueDate: timePtr(now.AddDate(0, 0, -5))},
	}

	b := Bucketize(tasks, now)

	assert.Equal(t, []string{"overdue"}, ids(b.Overdue))
	assert.Equal(t, []string{"midnight", "later-today"}, ids(b.Today))
	assert.Equal(t, []string{"tomorrow"}, ids(b.Upcoming))
	assert.Equal(t, []string{"undated"}, ids(b.NoDate))
	assert.Equal(t, []string{"done-overdue"}, ids(b.Completed))

	total := len(b.Overdue) + len(b.Today) + len(b.Upcoming) + len(b.NoDate) + len(b.Completed)
	assert.Equal(t, len(tasks), total)
}

func TestBucketizeMidnightBoundaryIsToday(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	midnight := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)

	b := Bucketize([]entities.Task{
		{ID: "t", Status: entities.TaskStatusPending, DueDate: timePtr(midnight)},
	}, now)

	assert.Empty(t, b.Overdue)
	assert.Equal(t, []string{"t"}, ids(b.Today))
}

func TestSortByDueDateIsStableAndTotal(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	tasks := []entities.Task{
		{ID: "undated-1"},
		{ID: "late", DueDate: timePtr(base.Add(48 * time.Hour))},
		{ID: "undated-2"},
		{ID: "early", DueDate: timePtr(base)},
		{ID: "undated-3"},
	}

	first := SortByDueDate(tasks)
	second := SortByDueDate(tasks)

	assert.Equal(t, []string{"early", "late", "undated-1", "undated-2", "undated-3"}, ids(first))
	assert.Equal(t, ids(first), ids(second))

	// Input order untouched.
	assert.Equal(t, "undated-1", tasks[0].ID)
}

func TestFilterByCategoriesUsesOrSemantics(t *testing.T) {
	tasks := []entities.Task{
		{ID: "y", Categories: []string{"work"}},
		{ID: "z", Categories: []string{"personal"}},
		{ID: "both", Categories: []string{"personal", "work"}},
		{ID: "none"},
	}

	tests := []struct {
		name   string
		active []string
		want   []string
	}{
		{"single category", []string{"work"}, []string{"y", "both"}},
		{"multiple categories match any", []string{"work", "personal"}, []string{"y", "z", "both"}},
		{"empty set means no filter", nil, []string{"y", "z", "both", "none"}},
		{"unknown category matches nothing", []string{"errands"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByCategories(tasks, tt.active)))
		})
	}
}

func TestFilterByProjectSentinel(t *testing.T) {
	tasks := []entities.Task{
		{ID: "w"},
		{ID: "v", ProjectID: strPtr("proj1")},
		{ID: "u", ProjectID: strPtr("proj2")},
	}

	assert.Equal(t, []string{"w"}, ids(FilterByProject(tasks, ProjectFilter{None: true})))
	assert.Equal(t, []string{"v"}, ids(FilterByProject(tasks, ProjectFilter{ID: "proj1"})))
	assert.Empty(t, ids(FilterByProject(tasks, ProjectFilter{ID: "missing"})))
}

func TestGroupByParentCollapsesToOneLevel(t *testing.T) {
	tasks := []entities.Task{
		{ID: "a", Title: "Write report"},
		{ID: "b", Title: "Draft outline", ParentID: strPtr("a")},
		{ID: "c", Title: "Standalone"},
	}

	groups := GroupByParent(tasks)

	require.Len(t, groups, 2)
	assert.Equal(t, "a", groups[0].Task.ID)
	assert.Equal(t, []string{"b"}, ids(groups[0].Subtasks))
	assert.Equal(t, "c", groups[1].Task.ID)
	assert.Empty(t, groups[1].Subtasks)
}

func TestTasksOnDayIgnoresTimeOfDayAndSubtasks(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	tasks := []entities.Task{
		{ID: "morning", DueDate: timePtr(day.Add(9 * time.Hour))},
		{ID: "evening", DueDate: timePtr(day.Add(21 * time.Hour))},
		{ID: "other-day", DueDate: timePtr(day.AddDate(0, 0, 1))},
		{ID: "sub", ParentID: strPtr("morning"), DueDate: timePtr(day.Add(10 * time.Hour))},
		{ID: "undated"},
	}

	assert.Equal(t, []string{"morning", "evening"}, ids(TasksOnDay(tasks, day)))
}

func TestBuildDayScheduleMergesAndSortsEvents(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	tasks := []entities.Task{
		{ID: "t1", DueDate: timePtr(day.Add(15 * time.Hour))},
		{ID: "t2", DueDate: timePtr(day.Add(9 * time.Hour))},
	}
	events := []entities.CalendarEvent{
		{ID: "e-late", Summary: "Review", Start: day.Add(16 * time.Hour)},
		{ID: "e-early", Summary: "Standup", Start: day.Add(10 * time.Hour)},
		{ID: "e-other", Summary: "Elsewhere", Start: day.AddDate(0, 0, 3)},
	}

	schedule := BuildDaySchedule(tasks, events, day)

	assert.Equal(t, []string{"t2", "t1"}, ids(schedule.Tasks))
	require.Len(t, schedule.Events, 2)
	assert.Equal(t, "e-early", schedule.Events[0].ID)
	assert.Equal(t, "e-late", schedule.Events[1].ID)
}

func TestBuildDayScheduleWithoutEvents(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.Local)
	tasks := []entities.Task{
		{ID: "t1", DueDate: timePtr(day.Add(8 * time.Hour))},
	}

	schedule := BuildDaySchedule(tasks, nil, day)

	assert.Equal(t, []string{"t1"}, ids(schedule.Tasks))
	assert.Empty(t, schedule.Events)
}

func TestSuggestNext(t *testing.T) {
	due := time.Date(2026, 9, 1, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		tasks     []entities.Task
		fallbacks []string
		want      string
		ok        bool
	}{
		{
			name: "most pressing dated task wins",
			tasks: []entities.Task{
				{ID: "a", Title: "Later", Status: entities.TaskStatusPending, DueDate: timePtr(due.AddDate(0, 0, 2))},
				{ID: "b", Title: "Soonest", Status: entities.TaskStatusPending, DueDate: timePtr(due)},
			},
			want: "Soonest",
			ok:   true,
		},
		{
			name: "completed and subtasks are skipped",
			tasks: []entities.Task{
				{ID: "a", Title: "Done", Status: entities.TaskStatusCompleted},
				{ID: "b", Title: "Child", Status: entities.TaskStatusPending, ParentID: strPtr("a")},
			},
			fallbacks: []string{"Tidy your desk"},
			want:      "Tidy your desk",
			ok:        true,
		},
		{
			name: "nothing at all",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SuggestNext(tt.tasks, tt.fallbacks)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ids(tasks []entities.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

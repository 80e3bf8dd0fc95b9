// Package views computes derived projections of the task collection.
// Every function here is pure: same (tasks, now, filters) in, same
// result out.
package views

import (
	"sort"
	"time"

	"github.com/taskdesk/core/internal/domain/entities"
)

// Buckets partitions non-completed tasks by due-date relation to "now".
// Completed tasks land in Completed regardless of date.
type Buckets struct {
	Overdue   []entities.Task
	Today     []entities.Task
	Upcoming  []entities.Task
	NoDate    []entities.Task
	Completed []entities.Task
}

// Bucketize partitions tasks relative to now. A task due exactly at
// local midnight of today belongs to Today, not Overdue.
func Bucketize(tasks []entities.Task, now time.Time) Buckets {
	startOfToday := startOfDay(now)
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)

	var b Buckets
	for _, t := range tasks {
		switch {
		case t.IsCompleted():
			b.Completed = append(b.Completed, t)
		case t.DueDate == nil:
			b.NoDate = append(b.NoDate, t)
		case t.DueDate.Before(startOfToday):
			b.Overdue = append(b.Overdue, t)
		case t.DueDate.Before(startOfTomorrow):
			b.Today = append(b.Today, t)
		default:
			b.Upcoming = append(b.Upcoming, t)
		}
	}
	return b
}

// SortByDueDate returns a copy sorted ascending by due date. Undated
// tasks sort after all dated tasks and keep their insertion order; the
// sort is stable throughout.
func SortByDueDate(tasks []entities.Task) []entities.Task {
	sorted := append([]entities.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DueDate, sorted[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return sorted
}

// FilterByCategories keeps tasks sharing at least one category with the
// active set (OR semantics). An empty active set means no filter.
func FilterByCategories(tasks []entities.Task, active []string) []entities.Task {
	if len(active) == 0 {
		return append([]entities.Task(nil), tasks...)
	}

	var matched []entities.Task
	for _, t := range tasks {
		for _, id := range active {
			if t.HasCategory(id) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}

// ProjectFilter selects tasks by project membership. None matches only
// tasks without a project; otherwise ID must match exactly.
type ProjectFilter struct {
	None bool
	ID   string
}

// FilterByProject keeps tasks matching the project filter.
func FilterByProject(tasks []entities.Task, filter ProjectFilter) []entities.Task {
	var matched []entities.Task
	for _, t := range tasks {
		if filter.None {
			if t.ProjectID == nil {
				matched = append(matched, t)
			}
			continue
		}
		if t.InProject(filter.ID) {
			matched = append(matched, t)
		}
	}
	return matched
}

// TaskGroup is a top-level task with its direct children.
type TaskGroup struct {
	Task     entities.Task
	Subtasks []entities.Task
}

// GroupByParent builds the one-level hierarchy for listing: only tasks
// without a parent appear at top level, each with its direct children
// nested beneath it. Tasks with a parent never appear at top level.
func GroupByParent(tasks []entities.Task) []TaskGroup {
	var groups []TaskGroup
	for _, t := range tasks {
		if !t.IsTopLevel() {
			continue
		}
		group := TaskGroup{Task: t}
		for _, sub := range tasks {
			if sub.ParentID != nil && *sub.ParentID == t.ID {
				group.Subtasks = append(group.Subtasks, sub)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// TasksOnDay returns the top-level tasks whose due date falls on the
// given calendar day, ignoring time of day.
func TasksOnDay(tasks []entities.Task, day time.Time) []entities.Task {
	var matched []entities.Task
	for _, t := range tasks {
		if t.IsTopLevel() && t.IsDueOn(day) {
			matched = append(matched, t)
		}
	}
	return matched
}

// DaySchedule merges a day's tasks with the external calendar events
// that start on that day. Events sort by start time; tasks by due date.
type DaySchedule struct {
	Day    time.Time
	Tasks  []entities.Task
	Events []entities.CalendarEvent
}

// BuildDaySchedule assembles the merged day view. The events slice may
// be nil when the calendar fetch failed or is disabled; the task side
// is unaffected either way.
func BuildDaySchedule(tasks []entities.Task, events []entities.CalendarEvent, day time.Time) DaySchedule {
	schedule := DaySchedule{
		Day:   day,
		Tasks: SortByDueDate(TasksOnDay(tasks, day)),
	}

	y, m, d := day.Date()
	for _, ev := range events {
		ey, em, ed := ev.Start.Date()
		if ey == y && em == m && ed == d {
			schedule.Events = append(schedule.Events, ev)
		}
	}
	sort.SliceStable(schedule.Events, func(i, j int) bool {
		return schedule.Events[i].Start.Before(schedule.Events[j].Start)
	})

	return schedule
}

// SuggestNext picks the most pressing pending top-level task, in due
// date order with undated tasks last. When no task qualifies the first
// fallback is used. The boolean reports whether anything was suggested.
func SuggestNext(tasks []entities.Task, fallbacks []string) (string, bool) {
	var candidates []entities.Task
	for _, t := range tasks {
		if t.IsTopLevel() && !t.IsCompleted() {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) > 0 {
		return SortByDueDate(candidates)[0].Title, true
	}
	if len(fallbacks) > 0 {
		return fallbacks[0], true
	}
	return "", false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

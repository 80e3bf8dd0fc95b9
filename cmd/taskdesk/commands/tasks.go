package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/internal/application/views"
	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/ports"
)

// NewTaskCommand creates the task management command tree.
func NewTaskCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Task management commands",
		Long:  "Create, list, edit, complete and delete tasks",
	}

	taskCmd.AddCommand(newTaskAddCommand())
	taskCmd.AddCommand(newTaskListCommand())
	taskCmd.AddCommand(newTaskEditCommand())
	taskCmd.AddCommand(newTaskDoneCommand())
	taskCmd.AddCommand(newTaskDeleteCommand())

	return taskCmd
}

func newTaskAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			req := ports.CreateTaskRequest{Title: args[0]}

			if due, _ := cmd.Flags().GetString("due"); due != "" {
				parsed, err := parseDue(due)
				if err != nil {
					log.Fatalf("Invalid due date: %v", err)
				}
				req.DueDate = &parsed
			}
			if parent, _ := cmd.Flags().GetString("parent"); parent != "" {
				req.ParentID = &parent
			}
			if categories, _ := cmd.Flags().GetStringSlice("category"); len(categories) > 0 {
				req.CategoryIDs = categories
			}
			if project, _ := cmd.Flags().GetString("project"); project != "" {
				req.ProjectID = &project
			}

			if err := validate.Struct(req); err != nil {
				log.Fatalf("Invalid task: %v", err)
			}

			task, err := a.store.AddTask(cmd.Context(), req)
			if err != nil {
				log.Fatalf("Failed to add task: %v", err)
			}

			fmt.Printf("Added task %s: %s\n", task.ID, task.Title)
		},
	}

	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	cmd.Flags().String("parent", "", "Parent task id (makes this a subtask)")
	cmd.Flags().StringSlice("category", nil, "Category id (repeatable)")
	cmd.Flags().String("project", "", "Project id")

	return cmd
}

func newTaskListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks grouped with their subtasks",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			snap := a.store.Snapshot()
			tasks := snap.Tasks

			if categories, _ := cmd.Flags().GetStringSlice("category"); len(categories) > 0 {
				tasks = views.FilterByCategories(tasks, categories)
			}
			noProject, _ := cmd.Flags().GetBool("no-project")
			project, _ := cmd.Flags().GetString("project")
			if noProject {
				tasks = views.FilterByProject(tasks, views.ProjectFilter{None: true})
			} else if project != "" {
				tasks = views.FilterByProject(tasks, views.ProjectFilter{ID: project})
			}

			matched := make(map[string]bool, len(tasks))
			for _, t := range tasks {
				matched[t.ID] = true
			}

			shown := 0
			for _, group := range views.GroupByParent(views.SortByDueDate(snap.Tasks)) {
				if !matched[group.Task.ID] {
					continue
				}
				shown++
				printTask(group.Task, "")
				for _, sub := range group.Subtasks {
					printTask(sub, "    ")
				}
			}

			if shown == 0 {
				fmt.Println("No tasks found.")
			}
		},
	}

	cmd.Flags().StringSlice("category", nil, "Filter: category id (repeatable, OR semantics)")
	cmd.Flags().String("project", "", "Filter: project id")
	cmd.Flags().Bool("no-project", false, "Filter: only tasks without a project")

	return cmd
}

func newTaskEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long:  "Edit a task. Only the flags you pass change; everything else keeps its prior value.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			var req ports.UpdateTaskRequest

			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				req.Title = ports.Some(title)
			}
			if clearDue, _ := cmd.Flags().GetBool("clear-due"); clearDue {
				req.DueDate = ports.Some[*time.Time](nil)
			} else if cmd.Flags().Changed("due") {
				due, _ := cmd.Flags().GetString("due")
				parsed, err := parseDue(due)
				if err != nil {
					log.Fatalf("Invalid due date: %v", err)
				}
				req.DueDate = ports.Some(&parsed)
			}
			if cmd.Flags().Changed("category") {
				categories, _ := cmd.Flags().GetStringSlice("category")
				req.CategoryIDs = ports.Some(categories)
			}
			if noProject, _ := cmd.Flags().GetBool("no-project"); noProject {
				req.ProjectID = ports.Some[*string](nil)
			} else if cmd.Flags().Changed("project") {
				project, _ := cmd.Flags().GetString("project")
				req.ProjectID = ports.Some(&project)
			}

			a.store.UpdateTask(cmd.Context(), args[0], req)
			fmt.Printf("Updated task %s\n", args[0])
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("due", "", "New due date")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	cmd.Flags().StringSlice("category", nil, "Replace the category set (repeatable)")
	cmd.Flags().String("project", "", "Move to this project")
	cmd.Flags().Bool("no-project", false, "Remove from any project")

	return cmd
}

func newTaskDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			a.store.ToggleTaskStatus(cmd.Context(), args[0])
			fmt.Printf("Toggled task %s\n", args[0])
		},
	}
}

func newTaskDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and its subtasks",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			a.store.DeleteTask(cmd.Context(), args[0])
			fmt.Printf("Deleted task %s\n", args[0])
		},
	}
}

func printTask(t entities.Task, indent string) {
	marker := "[ ]"
	if t.IsCompleted() {
		marker = "[x]"
	}
	line := fmt.Sprintf("%s%s %s  %s", indent, marker, t.ID, t.Title)
	if t.DueDate != nil {
		line += "  (due " + t.DueDate.Format("2006-01-02 15:04") + ")"
	}
	fmt.Println(line)
}

package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/internal/ports"
)

// NewCategoryCommand creates the category management command tree.
func NewCategoryCommand() *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Category management commands",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			color, _ := cmd.Flags().GetString("color")
			req := ports.CreateCategoryRequest{Name: args[0], Color: color}
			if err := validate.Struct(req); err != nil {
				log.Fatalf("Invalid category: %v", err)
			}

			category, err := a.store.AddCategory(cmd.Context(), req)
			if err != nil {
				log.Fatalf("Failed to add category: %v", err)
			}

			fmt.Printf("Added category %s: %s (%s)\n", category.ID, category.Name, category.Color)
		},
	}
	addCmd.Flags().String("color", "#3B82F6", "Display color (hex)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			snap := a.store.Snapshot()
			if len(snap.Categories) == 0 {
				fmt.Println("No categories.")
				return
			}
			for _, c := range snap.Categories {
				fmt.Printf("%s  %s  %s\n", c.ID, c.Color, c.Name)
			}
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a category",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			var req ports.UpdateCategoryRequest
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				req.Name = ports.Some(name)
			}
			if cmd.Flags().Changed("color") {
				color, _ := cmd.Flags().GetString("color")
				req.Color = ports.Some(color)
			}

			a.store.UpdateCategory(cmd.Context(), args[0], req)
			fmt.Printf("Updated category %s\n", args[0])
		},
	}
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("color", "", "New display color (hex)")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category and strip it from all tasks",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			a.store.DeleteCategory(cmd.Context(), args[0])
			fmt.Printf("Deleted category %s\n", args[0])
		},
	}

	categoryCmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd)
	return categoryCmd
}

// NewProjectCommand creates the project management command tree.
func NewProjectCommand() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			req := ports.CreateProjectRequest{Name: args[0]}
			if description, _ := cmd.Flags().GetString("description"); description != "" {
				req.Description = &description
			}
			if err := validate.Struct(req); err != nil {
				log.Fatalf("Invalid project: %v", err)
			}

			project, err := a.store.AddProject(cmd.Context(), req)
			if err != nil {
				log.Fatalf("Failed to add project: %v", err)
			}

			fmt.Printf("Added project %s: %s\n", project.ID, project.Name)
		},
	}
	addCmd.Flags().String("description", "", "Project description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			snap := a.store.Snapshot()
			if len(snap.Projects) == 0 {
				fmt.Println("No projects.")
				return
			}
			for _, p := range snap.Projects {
				line := fmt.Sprintf("%s  %s", p.ID, p.Name)
				if p.Description != nil {
					line += "  — " + *p.Description
				}
				fmt.Println(line)
			}
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			var req ports.UpdateProjectRequest
			if cmd.Flags().Changed("name") {
				name, _ := cmd.Flags().GetString("name")
				req.Name = ports.Some(name)
			}
			if clear, _ := cmd.Flags().GetBool("clear-description"); clear {
				req.Description = ports.Some[*string](nil)
			} else if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				req.Description = ports.Some(&description)
			}

			a.store.UpdateProject(cmd.Context(), args[0], req)
			fmt.Printf("Updated project %s\n", args[0])
		},
	}
	editCmd.Flags().String("name", "", "New name")
	editCmd.Flags().String("description", "", "New description")
	editCmd.Flags().Bool("clear-description", false, "Remove the description")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project and detach its tasks",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			a.store.DeleteProject(cmd.Context(), args[0])
			fmt.Printf("Deleted project %s\n", args[0])
		},
	}

	projectCmd.AddCommand(addCmd, listCmd, editCmd, deleteCmd)
	return projectCmd
}

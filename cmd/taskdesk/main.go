package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/cmd/taskdesk/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdesk",
		Short: "TaskDesk personal task manager",
		Long:  `TaskDesk is a local-first personal task manager: capture tasks, organize them into categories and projects, review them by due date or calendar day, and get a suggestion for what to do next.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewTaskCommand())
	rootCmd.AddCommand(commands.NewCategoryCommand())
	rootCmd.AddCommand(commands.NewProjectCommand())
	rootCmd.AddCommand(commands.NewTodayCommand())
	rootCmd.AddCommand(commands.NewDayCommand())
	rootCmd.AddCommand(commands.NewNextCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewImportCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

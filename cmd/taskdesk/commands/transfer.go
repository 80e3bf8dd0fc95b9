package commands

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/internal/application/transfer"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks, categories and projects to a JSON file",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			data, err := transfer.Export(a.store.Snapshot())
			if err != nil {
				log.Fatalf("Failed to export: %v", err)
			}

			path, _ := cmd.Flags().GetString("out")
			if path == "" {
				path = transfer.ExportFilename(time.Now())
			}

			if err := os.WriteFile(path, data, 0o644); err != nil {
				log.Fatalf("Failed to write export file: %v", err)
			}

			fmt.Printf("Exported to %s\n", path)
		},
	}

	cmd.Flags().String("out", "", "Output path (default taskmanager-export-<date>.json)")

	return cmd
}

// NewImportCommand creates the import command. A well-formed file
// wholesale-replaces the current state; a malformed one changes
// nothing.
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import tasks, categories and projects from an export file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				log.Fatalf("Failed to read import file: %v", err)
			}

			snap, err := transfer.Import(data)
			if err != nil {
				log.Fatalf("Import failed, state unchanged: %v", err)
			}

			a.store.Replace(cmd.Context(), snap)

			fmt.Printf("Imported %d tasks, %d categories, %d projects\n",
				len(snap.Tasks), len(snap.Categories), len(snap.Projects))
		},
	}
}

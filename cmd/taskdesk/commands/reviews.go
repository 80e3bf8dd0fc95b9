package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdesk/core/internal/adapters/calendar"
	"github.com/taskdesk/core/internal/application/views"
	"github.com/taskdesk/core/internal/domain/entities"
)

// NewTodayCommand creates the due-date bucket review command.
func NewTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Review tasks bucketed by due date",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			buckets := views.Bucketize(a.store.Snapshot().Tasks, time.Now())

			printBucket("Overdue", buckets.Overdue)
			printBucket("Today", buckets.Today)
			printBucket("Upcoming", buckets.Upcoming)
			printBucket("No date", buckets.NoDate)
			printBucket("Completed", buckets.Completed)
		},
	}
}

// NewDayCommand creates the calendar day view command, merging tasks
// due on the day with external calendar events when the integration is
// enabled.
func NewDayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show the schedule for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			day := time.Now()
			if len(args) == 1 {
				parsed, err := parseDue(args[0])
				if err != nil {
					log.Fatalf("Invalid day: %v", err)
				}
				day = parsed
			}

			var events []entities.CalendarEvent
			if a.cfg.Calendar.Enabled {
				client := calendar.New(a.cfg.Calendar, a.log)
				start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
				fetched, err := client.Events(cmd.Context(), start, start.AddDate(0, 0, 1))
				if err != nil {
					fmt.Printf("Calendar unavailable: %v\n", err)
				} else {
					events = fetched
				}
			}

			schedule := views.BuildDaySchedule(a.store.Snapshot().Tasks, events, day)

			fmt.Printf("Schedule for %s\n", day.Format("2006-01-02"))
			for _, ev := range schedule.Events {
				line := fmt.Sprintf("  %s  %s", ev.Start.Format("15:04"), ev.Summary)
				if ev.Location != "" {
					line += "  @ " + ev.Location
				}
				fmt.Println(line)
			}
			for _, t := range schedule.Tasks {
				printTask(t, "  ")
			}
			if len(schedule.Events) == 0 && len(schedule.Tasks) == 0 {
				fmt.Println("  Nothing scheduled.")
			}
		},
	}

	return cmd
}

// NewNextCommand creates the "what should I do now" command.
func NewNextCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Suggest the next task to work on",
		Run: func(cmd *cobra.Command, args []string) {
			a := openApp(cmd.Context())
			defer a.close()

			fallbacks, _ := cmd.Flags().GetStringSlice("fallback")
			suggestion, ok := views.SuggestNext(a.store.Snapshot().Tasks, fallbacks)
			if !ok {
				fmt.Println("Nothing to suggest. Enjoy the quiet.")
				return
			}

			fmt.Printf("How about: %s\n", suggestion)
		},
	}

	cmd.Flags().StringSlice("fallback", nil, "Fallback suggestion when no task is pending (repeatable)")

	return cmd
}

func printBucket(name string, tasks []entities.Task) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("%s:\n", name)
	for _, t := range views.SortByDueDate(tasks) {
		printTask(t, "  ")
	}
}

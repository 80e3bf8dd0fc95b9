package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/taskdesk/core/internal/adapters/state"
	"github.com/taskdesk/core/internal/application/store"
	"github.com/taskdesk/core/internal/infrastructure/config"
	"github.com/taskdesk/core/internal/infrastructure/logger"
)

var validate = validator.New()

// app bundles everything a command needs: config, logger, the state
// database and the hydrated entity store.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	state *state.DB
	store *store.Store
}

func openApp(ctx context.Context) *app {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	db, err := state.Open(cfg.State, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open state database", "error", err)
	}

	st := store.New(db, appLogger)
	if err := st.Hydrate(ctx); err != nil {
		appLogger.Fatal("Failed to load state", "error", err)
	}

	return &app{
		cfg:   cfg,
		log:   appLogger,
		state: db,
		store: st,
	}
}

func (a *app) close() {
	if err := a.state.Close(); err != nil {
		a.log.Warnw("Failed to close state database", "error", err)
	}
	_ = a.log.Close()
}

// parseDue accepts a date with or without a time of day, in local time.
func parseDue(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"} {
		if due, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return due, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM)", value)
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TaskDesk version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TaskDesk Core v1.0.0")
		},
	}
}

package state

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/taskdesk/core/internal/domain/entities"
	"github.com/taskdesk/core/internal/infrastructure/config"
	"github.com/taskdesk/core/internal/infrastructure/logger"
	"github.com/taskdesk/core/internal/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is the SQLite-backed key-value state store. Each collection is a
// single row in app_state holding the JSON-encoded array.
type DB struct {
	db             *sqlx.DB
	log            *logger.Logger
	seedCategories bool
}

// Open opens (creating if needed) the state database and brings its
// schema up to date.
func Open(cfg config.StateConfig, log *logger.Logger) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping state database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{
		db:             db,
		log:            log.WithComponent("state"),
		seedCategories: cfg.SeedCategories,
	}, nil
}

func migrateUp(db *sqlx.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate state schema: %w", err)
	}

	return nil
}

// Load reads all three collections. A missing key yields an empty
// collection (categories may be seeded with the starter set); a stored
// value that fails to parse is logged and replaced by an empty
// collection rather than surfaced as an error.
func (d *DB) Load(ctx context.Context) (entities.Snapshot, error) {
	snap := entities.Snapshot{
		Tasks:      []entities.Task{},
		Categories: []entities.Category{},
		Projects:   []entities.Project{},
	}

	if err := loadCollection(ctx, d, ports.KeyTasks, &snap.Tasks); err != nil {
		return snap, err
	}

	found, err := loadCollectionFound(ctx, d, ports.KeyCategories, &snap.Categories)
	if err != nil {
		return snap, err
	}
	if !found && d.seedCategories {
		snap.Categories = entities.DefaultCategories()
	}

	if err := loadCollection(ctx, d, ports.KeyProjects, &snap.Projects); err != nil {
		return snap, err
	}

	return snap, nil
}

func loadCollection[T any](ctx context.Context, d *DB, key string, dest *[]T) error {
	_, err := loadCollectionFound(ctx, d, key, dest)
	return err
}

func loadCollectionFound[T any](ctx context.Context, d *DB, key string, dest *[]T) (bool, error) {
	var raw string
	err := d.db.GetContext(ctx, &raw, `SELECT value FROM app_state WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		d.log.Warnw("Stored collection is malformed, starting empty", "key", key, "error", err)
		*dest = []T{}
	}

	return true, nil
}

// Save writes a whole collection back under its key.
func (d *DB) Save(ctx context.Context, key string, collection any) error {
	raw, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	query := `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := d.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	return nil
}

// Close closes the state database.
func (d *DB) Close() error {
	return d.db.Close()
}

var _ ports.StateStore = (*DB)(nil)

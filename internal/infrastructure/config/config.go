package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	State    StateConfig    `mapstructure:"state"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Calendar CalendarConfig `mapstructure:"calendar"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// StateConfig holds the local state database configuration
type StateConfig struct {
	Path           string `mapstructure:"path"`
	SeedCategories bool   `mapstructure:"seed_categories"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CalendarConfig holds the external calendar provider configuration.
// The access token lifecycle is entirely external; the client only
// forwards whatever token it is given.
type CalendarConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BaseURL     string        `mapstructure:"base_url"`
	CalendarID  string        `mapstructure:"calendar_id"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "TaskDesk")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// State defaults
	viper.SetDefault("state.path", defaultStatePath())
	viper.SetDefault("state.seed_categories", true)

	// Logger defaults
	viper.SetDefault("logger.level", "warn")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")

	// Calendar defaults
	viper.SetDefault("calendar.enabled", false)
	viper.SetDefault("calendar.base_url", "https://www.googleapis.com/calendar/v3")
	viper.SetDefault("calendar.calendar_id", "primary")
	viper.SetDefault("calendar.access_token", "")
	viper.SetDefault("calendar.timeout", "10s")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")

	// State
	viper.BindEnv("state.path", "STATE_PATH")
	viper.BindEnv("state.seed_categories", "STATE_SEED_CATEGORIES")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")

	// Calendar
	viper.BindEnv("calendar.enabled", "CALENDAR_ENABLED")
	viper.BindEnv("calendar.base_url", "CALENDAR_BASE_URL")
	viper.BindEnv("calendar.calendar_id", "CALENDAR_ID")
	viper.BindEnv("calendar.access_token", "CALENDAR_ACCESS_TOKEN")
	viper.BindEnv("calendar.timeout", "CALENDAR_TIMEOUT")
}

func validateConfig(cfg *Config) error {
	if cfg.State.Path == "" {
		return fmt.Errorf("state path is required")
	}

	if cfg.Calendar.Enabled && cfg.Calendar.BaseURL == "" {
		return fmt.Errorf("calendar base URL is required when the calendar integration is enabled")
	}

	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "taskdesk.db"
	}
	return filepath.Join(home, ".taskdesk", "state.db")
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

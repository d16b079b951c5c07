// Package config provides centralized configuration for Workflowr.
// Values come from built-in defaults, an optional YAML file and WORKFLOWR_*
// environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// RuntimeConfig holds every tunable value.
type RuntimeConfig struct {
	Storage StorageConfig
	Invoice InvoiceConfig
	Board   BoardConfig
	Log     LogConfig

	// File is the config file that was read, empty when defaults were used.
	File string
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	// Backend is one of badger, sqlite or memory.
	// Default: badger
	Backend string

	// Path is the badger directory or sqlite file. Empty means the XDG data dir.
	Path string
}

// InvoiceConfig holds invoice defaults.
type InvoiceConfig struct {
	// Company is printed in the PDF header.
	Company string

	// Currency is the symbol used for amounts.
	// Default: $
	Currency string

	// DueDays is added to the issue date when no due date is given.
	// Default: 15
	DueDays int
}

// BoardConfig holds interactive board settings.
type BoardConfig struct {
	// RefreshInterval is how often running timers are re-rendered.
	// Default: 1s
	RefreshInterval time.Duration
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: warn
	Level string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			Backend: BackendBadger,
		},
		Invoice: InvoiceConfig{
			Company:  "Workflowr",
			Currency: "$",
			DueDays:  15,
		},
		Board: BoardConfig{
			RefreshInterval: time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/workflowr/workflowr.yml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "workflowr", "workflowr.yml")
}

// newViper returns a viper instance seeded with defaults and env bindings.
func newViper() *viper.Viper {
	d := DefaultRuntimeConfig()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WORKFLOWR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("invoice.company", d.Invoice.Company)
	v.SetDefault("invoice.currency", d.Invoice.Currency)
	v.SetDefault("invoice.due_days", d.Invoice.DueDays)
	v.SetDefault("board.refresh_interval", d.Board.RefreshInterval)
	v.SetDefault("log.level", d.Log.Level)
	return v
}

// Load reads the config file at path (DefaultConfigFile when empty) and
// applies environment overrides. A missing file is not an error.
func Load(path string) (*RuntimeConfig, error) {
	if path == "" {
		path = DefaultConfigFile()
	}

	v := newViper()
	v.SetConfigFile(path)

	file := path
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		file = ""
	}

	cfg := fromViper(v)
	cfg.File = file
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *RuntimeConfig {
	cfg := &RuntimeConfig{
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			Path:    v.GetString("storage.path"),
		},
		Invoice: InvoiceConfig{
			Company:  v.GetString("invoice.company"),
			Currency: v.GetString("invoice.currency"),
			DueDays:  v.GetInt("invoice.due_days"),
		},
		Board: BoardConfig{
			RefreshInterval: v.GetDuration("board.refresh_interval"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	// Legacy database override used by tests and scripts.
	if os.Getenv("WORKFLOWR_DATABASE") == ":memory:" {
		cfg.Storage.Backend = BackendMemory
	}
	return cfg
}

// Validate rejects values that would make the CLI misbehave.
func (c *RuntimeConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendBadger, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (want badger, sqlite or memory)", c.Storage.Backend)
	}
	if c.Invoice.DueDays < 0 {
		return fmt.Errorf("invoice.due_days must not be negative, got %d", c.Invoice.DueDays)
	}
	if c.Board.RefreshInterval <= 0 {
		c.Board.RefreshInterval = time.Second
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *RuntimeConfig) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range c.Settings() {
		v.Set(key, value)
	}
	return v.WriteConfigAs(path)
}

// Settings flattens the configuration into dotted keys, as shown by
// `workflowr config`.
func (c *RuntimeConfig) Settings() map[string]any {
	return map[string]any{
		"storage.backend":        c.Storage.Backend,
		"storage.path":           c.Storage.Path,
		"invoice.company":        c.Invoice.Company,
		"invoice.currency":       c.Invoice.Currency,
		"invoice.due_days":       c.Invoice.DueDays,
		"board.refresh_interval": c.Board.RefreshInterval.String(),
		"log.level":              c.Log.Level,
	}
}

// Set changes one key in the config file at path (DefaultConfigFile when
// empty) and leaves the other keys of the file as they are.
func Set(path, key, value string) error {
	if path == "" {
		path = DefaultConfigFile()
	}
	if _, ok := DefaultRuntimeConfig().Settings()[key]; !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	file := viper.New()
	file.SetConfigType("yaml")
	file.SetConfigFile(path)
	if err := file.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	switch key {
	case "invoice.due_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number of days, got %q", key, value)
		}
		file.Set(key, n)
	case "board.refresh_interval":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration like 500ms or 2s, got %q", key, value)
		}
		file.Set(key, d.String())
	default:
		file.Set(key, value)
	}

	check := newViper()
	if err := check.MergeConfigMap(file.AllSettings()); err != nil {
		return err
	}
	if err := fromViper(check).Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	return file.WriteConfigAs(path)
}

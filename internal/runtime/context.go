// Package runtime wires configuration, storage and the stores into the
// context shared by every Workflowr command.
package runtime

import (
	"context"
	"time"

	"github.com/manav03panchal/workflowr/internal/config"
	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/storage"
	"github.com/manav03panchal/workflowr/internal/store"
)

// Context holds the application runtime context.
type Context struct {
	Config    *config.RuntimeConfig
	Repo      storage.Repository
	Session   *store.Session
	Formatter *output.Formatter

	// Ctx carries the request ID of this invocation for log correlation.
	Ctx context.Context

	// Now is the clock used by the stores.
	Now func() time.Time

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	// ConfigFile overrides the default config location.
	ConfigFile string
	// Config skips file loading when set.
	Config    *config.RuntimeConfig
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
	Now       func() time.Time
	// Command is the command path tagged on every log line.
	Command string
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Now:       time.Now,
	}
}

// New loads configuration, opens the configured repository and loads every
// store.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	if opts.Debug {
		logging.InitDebug()
	} else {
		logCfg := logging.DefaultConfig()
		logCfg.Level = logging.ParseLevel(cfg.Log.Level)
		logging.Init(logCfg)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	reqCtx := logging.NewRequestContext(opts.Command)

	repo, err := storage.OpenRepository(cfg.Storage)
	if err != nil {
		return nil, err
	}
	session := store.Open(repo, store.WithClock(now))

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	formatter.Currency = cfg.Invoice.Currency

	logging.DebugContext(reqCtx, "runtime ready",
		logging.KeyBackend, cfg.Storage.Backend,
		"config_file", cfg.File)

	return &Context{
		Config:    cfg,
		Repo:      repo,
		Session:   session,
		Formatter: formatter,
		Ctx:       reqCtx,
		Now:       now,
		Debug:     opts.Debug,
	}, nil
}

// Close releases the repository.
func (c *Context) Close() error {
	if c.Session == nil {
		return nil
	}
	if err := c.Session.Close(); err != nil {
		logging.WarnContext(c.Ctx, "closing storage failed", logging.KeyError, err)
		return err
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf logs a debug line tagged with the request ID.
func (c *Context) Debugf(msg string, args ...any) {
	if c.Debug {
		logging.DebugContext(c.Ctx, msg, args...)
	}
}

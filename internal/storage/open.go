package storage

import (
	"github.com/manav03panchal/workflowr/internal/config"
	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/logging"
)

// OpenRepository opens the backend selected by cfg.
func OpenRepository(cfg config.StorageConfig) (Repository, error) {
	log := logging.Component("storage").With(logging.KeyBackend, cfg.Backend)

	switch cfg.Backend {
	case config.BackendMemory:
		log.Debug("opening repository")
		return NewMemoryRepository(), nil

	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath()
		}
		log.Debug("opening repository", "path", path)
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, errors.NewSystemErrorWithOp("open sqlite", "cannot open database", err)
		}
		return repo, nil

	case config.BackendBadger, "":
		path := cfg.Path
		if path == "" {
			path = DefaultPath()
		}
		log.Debug("opening repository", "path", path)
		repo, err := OpenBadger(path)
		if err != nil {
			return nil, errors.NewSystemErrorWithOp("open badger", "cannot open database", err)
		}
		return repo, nil

	default:
		return nil, errors.NewUserErrorWithField("storage.backend", cfg.Backend,
			"Unknown storage backend", "").Because(errors.ErrUnknownBackend)
	}
}

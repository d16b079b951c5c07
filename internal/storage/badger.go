package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

// AppName is the application name used for data directories.
const AppName = "workflowr"

// ErrKeyNotFound is returned when a record does not exist.
var ErrKeyNotFound = errors.New("key not found")

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// DB wraps a Badger database connection.
type DB struct {
	db *badger.DB
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default badger directory under the XDG data dir.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a badger database.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// GetBytes retrieves a copy of the raw value stored under key.
func (d *DB) GetBytes(key string) ([]byte, error) {
	var result []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

// SetBytes stores raw bytes with the given key.
func (d *DB) SetBytes(key string, data []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Delete removes keys in a single transaction. Missing keys are ignored.
func (d *DB) Delete(keys ...string) error {
	return d.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByPrefix returns all keys with the given prefix.
func (d *DB) ListByPrefix(prefix string) ([]string, error) {
	var keys []string
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// BadgerRepository stores each collection under its record key in badger.
type BadgerRepository struct {
	records
}

// NewBadgerRepository wraps an open DB.
func NewBadgerRepository(db *DB) *BadgerRepository {
	r := &BadgerRepository{}
	r.store = badgerRecords{db: db}
	return r
}

// OpenBadger opens (or creates) a badger repository. An empty path opens
// an in-memory database.
func OpenBadger(path string) (*BadgerRepository, error) {
	db, err := Open(Options{Path: path})
	if err != nil {
		return nil, err
	}
	return NewBadgerRepository(db), nil
}

type badgerRecords struct {
	db *DB
}

func (b badgerRecords) get(key string) ([]byte, error)       { return b.db.GetBytes(key) }
func (b badgerRecords) put(key string, data []byte) error    { return b.db.SetBytes(key, data) }
func (b badgerRecords) remove(keys ...string) error          { return b.db.Delete(keys...) }
func (b badgerRecords) keys(prefix string) ([]string, error) { return b.db.ListByPrefix(prefix) }
func (b badgerRecords) close() error                         { return b.db.Close() }
func (b badgerRecords) name() string                         { return "badger" }

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is one serialized collection in the sqlite backend.
type Record struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// DefaultSQLitePath returns the default sqlite file under the XDG data dir.
func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, AppName, "workflowr.db")
}

// SQLRepository stores each collection as a row of the records table.
type SQLRepository struct {
	records
}

// OpenSQLite opens (or creates) a sqlite repository at path and migrates
// the schema. ":memory:" opens a throwaway database.
func OpenSQLite(path string) (*SQLRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r := &SQLRepository{}
	r.store = sqlRecords{db: db}
	return r, nil
}

type sqlRecords struct {
	db *gorm.DB
}

func (s sqlRecords) get(key string) ([]byte, error) {
	var rec Record
	err := s.db.Where(&Record{Key: key}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Value, nil
}

func (s sqlRecords) put(key string, data []byte) error {
	rec := Record{Key: key, Value: data}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

func (s sqlRecords) remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.Where("`key` IN ?", keys).Delete(&Record{}).Error
}

func (s sqlRecords) keys(prefix string) ([]string, error) {
	var keys []string
	err := s.db.Model(&Record{}).Where("`key` LIKE ?", prefix+"%").Pluck("key", &keys).Error
	return keys, err
}

func (s sqlRecords) close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s sqlRecords) name() string { return "sqlite" }

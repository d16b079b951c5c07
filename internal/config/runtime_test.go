package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	assert.Equal(t, BackendBadger, cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "$", cfg.Invoice.Currency)
	assert.Equal(t, 15, cfg.Invoice.DueDays)
	assert.Equal(t, time.Second, cfg.Board.RefreshInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	t.Run("missing_file_uses_defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.File)
		assert.Equal(t, BackendBadger, cfg.Storage.Backend)
		assert.Equal(t, 15, cfg.Invoice.DueDays)
	})

	t.Run("reads_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workflowr.yml")
		content := "storage:\n  backend: sqlite\n  path: /tmp/w.db\ninvoice:\n  company: Acme Studio\n  currency: €\n  due_days: 30\nboard:\n  refresh_interval: 500ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.File)
		assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
		assert.Equal(t, "/tmp/w.db", cfg.Storage.Path)
		assert.Equal(t, "Acme Studio", cfg.Invoice.Company)
		assert.Equal(t, "€", cfg.Invoice.Currency)
		assert.Equal(t, 30, cfg.Invoice.DueDays)
		assert.Equal(t, 500*time.Millisecond, cfg.Board.RefreshInterval)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workflowr.yml")
		require.NoError(t, os.WriteFile(path, []byte("invoice:\n  due_days: 30\n"), 0o644))
		t.Setenv("WORKFLOWR_INVOICE_DUE_DAYS", "7")
		t.Setenv("WORKFLOWR_STORAGE_BACKEND", "memory")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Invoice.DueDays)
		assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	})

	t.Run("memory_database_env", func(t *testing.T) {
		t.Setenv("WORKFLOWR_DATABASE", ":memory:")
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	})

	t.Run("unknown_backend_rejected", func(t *testing.T) {
		t.Setenv("WORKFLOWR_STORAGE_BACKEND", "postgres")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})

	t.Run("malformed_yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "workflowr.yml")
		require.NoError(t, os.WriteFile(path, []byte("storage: [unclosed"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Invoice.DueDays = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultRuntimeConfig()
	cfg.Board.RefreshInterval = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.Board.RefreshInterval)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workflowr.yml")
	cfg := DefaultRuntimeConfig()
	cfg.Invoice.Company = "Round Trip Ltd"
	cfg.Invoice.DueDays = 21
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Round Trip Ltd", loaded.Invoice.Company)
	assert.Equal(t, 21, loaded.Invoice.DueDays)
	assert.Equal(t, time.Second, loaded.Board.RefreshInterval)
}

func TestSettings(t *testing.T) {
	s := DefaultRuntimeConfig().Settings()
	assert.Equal(t, "badger", s["storage.backend"])
	assert.Equal(t, "1s", s["board.refresh_interval"])
	assert.Len(t, s, 7)
}

func TestSet(t *testing.T) {
	t.Run("creates_file_and_keeps_other_keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg", "workflowr.yml")
		require.NoError(t, Set(path, "invoice.company", "Acme Studio"))
		require.NoError(t, Set(path, "invoice.due_days", "30"))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme Studio", cfg.Invoice.Company)
		assert.Equal(t, 30, cfg.Invoice.DueDays)
		assert.Equal(t, "$", cfg.Invoice.Currency)
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown_key", "invoice.colour", "red"},
		{"due_days_not_a_number", "invoice.due_days", "soon"},
		{"negative_due_days", "invoice.due_days", "-3"},
		{"bad_refresh_interval", "board.refresh_interval", "fast"},
		{"unknown_backend", "storage.backend", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "workflowr.yml")
			assert.Error(t, Set(path, tt.key, tt.value))
			_, err := os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

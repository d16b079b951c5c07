package storage

import (
	"strings"
	"sync"
)

// MemoryRepository keeps records in process memory. Used by tests and the
// memory backend.
type MemoryRepository struct {
	records
	mem *memoryRecords
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	mem := &memoryRecords{data: make(map[string][]byte)}
	r := &MemoryRepository{mem: mem}
	r.store = mem
	return r
}

// PutRaw stores bytes under key without encoding, e.g. to simulate a
// corrupt record.
func (r *MemoryRepository) PutRaw(key string, data []byte) {
	_ = r.mem.put(key, data)
}

// Raw returns the stored bytes for key, or nil.
func (r *MemoryRepository) Raw(key string) []byte {
	data, _ := r.mem.get(key)
	return data
}

// FailWrites makes every subsequent put return err. Pass nil to recover.
func (r *MemoryRepository) FailWrites(err error) {
	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	r.mem.writeErr = err
}

type memoryRecords struct {
	mu       sync.RWMutex
	data     map[string][]byte
	writeErr error
}

func (m *memoryRecords) get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *memoryRecords) put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryRecords) remove(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryRecords) keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *memoryRecords) close() error { return nil }
func (m *memoryRecords) name() string { return "memory" }

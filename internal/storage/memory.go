package storage

import "sync"

// MemoryDB implements DB using an in-memory map.
type MemoryDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates a new in-memory database.
func NewMemory() *MemoryDB {
	return &MemoryDB{
		data: make(map[string][]byte),
	}
}

// Get retrieves a value by key.
func (m *MemoryDB) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put stores a key-value pair.
func (m *MemoryDB) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

// Delete removes a key.
func (m *MemoryDB) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, string(key))
	return nil
}

// Has checks if a key exists.
func (m *MemoryDB) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[string(key)]
	return ok, nil
}

// Close closes the database.
func (m *MemoryDB) Close() error {
	return nil
}

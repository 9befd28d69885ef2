// Package persist saves the blueprint document to durable key/value
// storage, share links and exported JSON files.
package persist

import (
	"sort"
	"sync"
)

// Storage keys. Each field is stored independently.
const (
	KeyIcons     = "icons"
	KeyTexts     = "texts"
	KeyProps     = "props"
	KeyGrid      = "grid"
	KeyRGBValues = "rgbValues"
	KeySave      = "save"
)

// DocumentKeys are the fields shared through links and files.
var DocumentKeys = []string{KeyIcons, KeyTexts, KeyProps, KeyGrid}

// Store is durable local key/value storage.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
	Close() error
}

// MemoryStore is an in-process Store, used for tests and -store=memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

func (m *MemoryStore) Get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string][]byte{}
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Keys lists stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

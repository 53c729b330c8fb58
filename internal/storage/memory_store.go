package storage

import (
	"fmt"
	"sync"
)

// MemoryStore is a ConfigStore that never touches disk. It stands in when the
// config file cannot be opened and records every Set for inspection.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]any
	writes []Write
}

// Write is one recorded Set call.
type Write struct {
	Key   string
	Value any
}

// NewMemoryStore returns a store seeded with values, which may be nil.
func NewMemoryStore(values map[string]any) *MemoryStore {
	seeded := make(map[string]any, len(values))
	for key, value := range values {
		normalized, err := jsonCodec.normalize(value)
		if err != nil {
			normalized = value
		}
		seeded[key] = normalized
	}
	return &MemoryStore{values: seeded}
}

// Get implements ConfigStore.
func (store *MemoryStore) Get(key string, target any) (bool, error) {
	store.mu.Lock()
	raw, ok := store.values[key]
	store.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := decodeValue(raw, target); err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	return true, nil
}

// Set implements ConfigStore.
func (store *MemoryStore) Set(key string, value any) error {
	normalized, err := jsonCodec.normalize(value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = normalized
	store.writes = append(store.writes, Write{Key: key, Value: value})
	return nil
}

// Writes returns the recorded Set calls in order.
func (store *MemoryStore) Writes() []Write {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]Write(nil), store.writes...)
}

// WrittenKeys returns the keys of the recorded Set calls in order.
func (store *MemoryStore) WrittenKeys() []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	keys := make([]string, 0, len(store.writes))
	for _, write := range store.writes {
		keys = append(keys, write.Key)
	}
	return keys
}

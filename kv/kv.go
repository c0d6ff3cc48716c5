// Package kv defines the key-value capability the hedgebook library
// persists through, with an in-memory implementation for tests and a
// directory-backed one for local use. A sqlite-backed store lives in the
// sqlitekv subpackage.
package kv

// Store is the persistence capability injected into Load and Save. It is a
// plain get/set contract: the library owns the document format, the store
// owns the bytes.
type Store interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemStore is an in-memory Store. The zero value is not usable; call
// NewMemStore.
type MemStore struct {
	m map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, bool) {
	v, ok := s.m[key]
	return v, ok
}

func (s *MemStore) Set(key, value string) error {
	s.m[key] = value
	return nil
}

func (s *MemStore) Delete(key string) error {
	delete(s.m, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemStore) Len() int { return len(s.m) }

package cache

import (
	"sync"
)

// MemoryStorage keeps entries in process. It backs the cache when no redis
// is configured and in tests.
type MemoryStorage struct {
	mutex  sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Create(key string, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.values[key] = value

	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.values, key)

	return nil
}

func (s *MemoryStorage) Exists(key string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	_, ok := s.values[key]

	return ok, nil
}

func (s *MemoryStorage) Search(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.values[key], nil
}

// Len returns the number of stored entries.
func (s *MemoryStorage) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return len(s.values)
}

package repos

import (
	"context"
	"sync"
)

// MemKV keeps records in process memory. Used by tests and DB_DRIVER=memory.
type MemKV struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemKV() *MemKV { return &MemKV{m: map[string]string{}} }

func (s *MemKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemKV) Put(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

func (s *MemKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

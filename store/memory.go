package store

import (
	"context"
	"sync"

	"github.com/K1ssSh0t/url-shortener/models"
)

// MemoryStore keeps mappings in process memory. It backs the "memory"
// driver and the unit tests; contents are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[string]models.Mapping
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{mappings: make(map[string]models.Mapping)}
}

func (s *MemoryStore) Create(ctx context.Context, m *models.Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// No uniqueness check: a colliding code replaces the previous mapping.
	s.mappings[m.ShortCode] = *m
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, shortCode string) (*models.Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mappings[shortCode]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (s *MemoryStore) IncrementClicks(ctx context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mappings[shortCode]
	if !ok {
		return nil
	}
	m.Clicks++
	s.mappings[shortCode] = m
	return nil
}

func (s *MemoryStore) UpdateURL(ctx context.Context, shortCode, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mappings[shortCode]
	if !ok {
		return ErrNotFound
	}
	m.URL = url
	s.mappings[shortCode] = m
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, shortCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mappings[shortCode]; !ok {
		return ErrNotFound
	}
	delete(s.mappings, shortCode)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

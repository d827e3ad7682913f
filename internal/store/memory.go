package store

import (
	"context"
	"sync"

	"github.com/castilhos/url-shortener/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository. It
// enforces the same uniqueness constraints as the PostgreSQL store so the
// write path's collision handling can be exercised without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	byCode    map[string]shortener.URLRecord
	byLongURL map[string]shortener.URLRecord
}

// NewMemoryStore creates a new in-memory URL repository.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byCode:    make(map[string]shortener.URLRecord),
		byLongURL: make(map[string]shortener.URLRecord),
	}
}

func (m *MemoryStore) FindByLongURL(_ context.Context, longURL string) (*shortener.URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byLongURL[longURL]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &record, nil
}

func (m *MemoryStore) FindByShortCode(_ context.Context, code string) (*shortener.URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byCode[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &record, nil
}

func (m *MemoryStore) Insert(_ context.Context, record *shortener.URLRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byLongURL[record.LongURL]; exists {
		return shortener.ErrDuplicateURL
	}

	if _, exists := m.byCode[record.ShortCode]; exists {
		return shortener.ErrDuplicateCode
	}

	m.byCode[record.ShortCode] = *record
	m.byLongURL[record.LongURL] = *record

	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)

package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryItem struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore — потокобезопасный in-memory Store с TTL.
// Просроченные записи удаляются лениво при чтении и при Set.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	gens  map[string]uint64
	now   func() time.Time
}

// NewMemoryStore создаёт пустой MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		gens:  make(map[string]uint64),
		now:   time.Now,
	}
}

// WithClock подменяет часы (для тестов истечения TTL).
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return Entry{}, false, nil
	}
	if !s.now().Before(it.expiresAt) {
		s.mu.Lock()
		// запись могли перезаписать, пока лок был отпущен
		if cur, ok := s.items[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return Entry{}, false, nil
	}
	return it.entry, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	body := make([]byte, len(e.Body))
	copy(body, e.Body)
	e.Body = body

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, it := range s.items {
		if !now.Before(it.expiresAt) {
			delete(s.items, k)
		}
	}
	s.items[key] = memoryItem{entry: e, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Generation(_ context.Context, prefix string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[prefix], nil
}

func (s *MemoryStore) InvalidatePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gens[prefix]++
	for k := range s.items {
		if strings.HasPrefix(k, prefix) {
			delete(s.items, k)
		}
	}
	return nil
}

// Len — число записей, включая ещё не вычищенные просроченные.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

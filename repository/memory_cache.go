package repository

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCache is a process-local CacheRepository with LRU eviction once
// maxEntries is reached. A zero ttl never expires. Expired entries are
// dropped on read and swept on write once the earliest deadline passes.
type MemoryCache struct {
	mu         sync.Mutex
	maxEntries int
	items      map[string]*list.Element
	lru        *list.List
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache creates a cache holding at most maxEntries keys; zero or a
// negative value disables the size bound.
func NewMemoryCache(maxEntries int) *MemoryCache {
	return &MemoryCache{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		lru:        list.New(),
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return "", false
	}
	entry := elem.Value.(*memoryEntry)
	if entry.expired(m.now()) {
		m.removeElement(elem)
		return "", false
	}
	m.lru.MoveToFront(elem)
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !m.nextSweep.IsZero() && !now.Before(m.nextSweep) {
		m.sweep(now)
	}

	entry := &memoryEntry{key: key, value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
		if m.nextSweep.IsZero() || entry.expiresAt.Before(m.nextSweep) {
			m.nextSweep = entry.expiresAt
		}
	}

	if elem, ok := m.items[key]; ok {
		elem.Value = entry
		m.lru.MoveToFront(elem)
		return nil
	}
	m.items[key] = m.lru.PushFront(entry)

	for m.maxEntries > 0 && m.lru.Len() > m.maxEntries {
		m.removeElement(m.lru.Back())
	}
	return nil
}

// sweep drops every expired entry and schedules the next sweep at the
// earliest remaining deadline.
func (m *MemoryCache) sweep(now time.Time) {
	m.nextSweep = time.Time{}
	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		entry := elem.Value.(*memoryEntry)
		switch {
		case entry.expired(now):
			m.removeElement(elem)
		case entry.expiresAt.IsZero():
		case m.nextSweep.IsZero() || entry.expiresAt.Before(m.nextSweep):
			m.nextSweep = entry.expiresAt
		}
		elem = prev
	}
}

func (m *MemoryCache) removeElement(elem *list.Element) {
	delete(m.items, elem.Value.(*memoryEntry).key)
	m.lru.Remove(elem)
}

// Len counts stored entries, including expired ones not yet swept.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

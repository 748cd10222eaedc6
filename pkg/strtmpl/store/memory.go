package store

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory definition store for tests and short-lived
// catalogs. Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	docs   map[string]storedDoc
	closed bool
}

type storedDoc struct {
	info Info
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]storedDoc)}
}

// Save implements Store.
func (m *MemoryStore) Save(name string, data []byte) (Info, error) {
	if name == "" {
		return Info{}, ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	info := Info{ID: uuid.NewString(), Name: name, Version: 1}
	if prev, ok := m.docs[name]; ok {
		info.ID = prev.info.ID
		info.Version = prev.info.Version + 1
	}
	info.Timestamp = time.Now().UTC()
	info.Size = int64(len(data))

	m.docs[name] = storedDoc{info: info, data: slices.Clone(data)}
	return info, nil
}

// Load implements Store.
func (m *MemoryStore) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	doc, ok := m.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	// copy so callers cannot mutate stored bytes
	return slices.Clone(doc.data), nil
}

// Stat implements Store.
func (m *MemoryStore) Stat(name string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Info{}, ErrStoreClosed
	}

	doc, ok := m.docs[name]
	if !ok {
		return Info{}, ErrNotFound
	}
	return doc.info, nil
}

// List implements Store.
func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.docs))
	for _, doc := range m.docs {
		infos = append(infos, doc.info)
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.docs, name)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.docs = nil
	return nil
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

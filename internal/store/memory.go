package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store entirely in process memory. It is used
// by the test suites and for local runs without a reachable MongoDB.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: map[string]map[string]Document{},
	}
}

// Collection returns the CRUD facade for the named collection.
func (s *MemoryStore) Collection(name string) Collection {
	return &memoryCollection{store: s, name: name}
}

type memoryCollection struct {
	store *MemoryStore
	name  string
}

// docs returns the backing map for the collection, creating it when
// missing. Callers must hold the store lock for writing.
func (c *memoryCollection) docs() map[string]Document {
	docs, ok := c.store.collections[c.name]
	if !ok {
		docs = map[string]Document{}
		c.store.collections[c.name] = docs
	}
	return docs
}

func (c *memoryCollection) List(_ context.Context, filter *Filter) ([]Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	var out []Document
	for id, doc := range c.store.collections[c.name] {
		if filter != nil && doc[filter.Field] != filter.Value {
			continue
		}
		clone := cloneDocument(doc)
		clone["id"] = id
		out = append(out, clone)
	}

	// Stable order for callers: oldest first, id as tie-break.
	sort.Slice(out, func(i, j int) bool {
		ci, _ := out[i]["createdAt"].(string)
		cj, _ := out[j]["createdAt"].(string)
		if ci != cj {
			return ci < cj
		}
		ii, _ := out[i]["id"].(string)
		ij, _ := out[j]["id"].(string)
		return ii < ij
	})

	return out, nil
}

func (c *memoryCollection) Get(_ context.Context, id string) (Document, error) {
	c.store.mu.RLock()
	defer c.store.mu.RUnlock()

	doc, ok := c.store.collections[c.name][id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cloneDocument(doc)
	clone["id"] = id
	return clone, nil
}

func (c *memoryCollection) Add(_ context.Context, fields Document) (string, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	doc := cloneDocument(fields)
	delete(doc, "id")
	now := timestamp()
	doc["createdAt"] = now
	doc["updatedAt"] = now

	id := uuid.NewString()
	c.docs()[id] = doc
	return id, nil
}

func (c *memoryCollection) Update(_ context.Context, id string, patch Document) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	doc, ok := c.docs()[id]
	if !ok {
		return ErrNotFound
	}

	for k, v := range cloneDocument(patch) {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	doc["updatedAt"] = timestamp()
	return nil
}

func (c *memoryCollection) Delete(_ context.Context, id string) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	docs := c.docs()
	if _, ok := docs[id]; !ok {
		return ErrNotFound
	}
	delete(docs, id)
	return nil
}

package loader

import (
	"fmt"
	"sync"
)

// Store holds external schema documents keyed by URI, ready to hand to a
// validator's RegisterDocument. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string]any
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{docs: make(map[string]any)}
}

// Add registers a parsed document under a URI, replacing any previous one.
func (s *Store) Add(uri string, doc any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
}

// AddFile parses a document file and registers it under a URI.
func (s *Store) AddFile(uri, path string) error {
	doc, err := LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading document for %s: %w", uri, err)
	}
	s.Add(uri, doc)
	return nil
}

// Get returns the document registered under a URI.
func (s *Store) Get(uri string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return doc, ok
}

// Len returns the number of registered documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Range calls fn for every registered document until fn returns false.
func (s *Store) Range(fn func(uri string, doc any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for uri, doc := range s.docs {
		if !fn(uri, doc) {
			return
		}
	}
}

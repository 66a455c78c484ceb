package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is a map-backed Store for tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]map[string][]byte{}}
}

func (s *MemoryStore) Put(ctx context.Context, collection, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.collections[collection]
	if !ok {
		coll = map[string][]byte{}
		s.collections[collection] = coll
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	coll[key] = cp
	return nil
}

func (s *MemoryStore) GetByKey(ctx context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

func (s *MemoryStore) Scan(ctx context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll := s.collections[collection]
	docs := make([][]byte, 0, len(coll))
	for _, doc := range coll {
		cp := make([]byte, len(doc))
		copy(cp, doc)
		docs = append(docs, cp)
	}
	return docs, nil
}

func (s *MemoryStore) UpdatePartial(ctx context.Context, collection, key string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.collections[collection][key]
	if !ok {
		return ErrNotFound
	}
	var doc map[string]any
	if err := json.Unmarshal(current, &doc); err != nil {
		return fmt.Errorf("kv update %s/%s: decoding stored document: %w", collection, key, err)
	}
	for field, value := range fields {
		doc[field] = value
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("kv update %s/%s: encoding merged document: %w", collection, key, err)
	}
	s.collections[collection][key] = merged
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], key)
	return nil
}

package metadata

import (
	"context"
	"fmt"
	"sync"

	"skillforge/internal/certificate/models"
	"skillforge/pkg/platform/sentinel"
)

// InMemoryStore keeps encoded documents in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{objects: make(map[string][]byte)}
}

func (s *InMemoryStore) Put(_ context.Context, contentHash string, doc *models.MetadataDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[ObjectKey(contentHash)] = data
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, contentHash string) (*models.MetadataDocument, error) {
	s.mu.RLock()
	data, ok := s.objects[ObjectKey(contentHash)]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("metadata %s: %w", contentHash, sentinel.ErrNotFound)
	}
	return Decode(data)
}

func (s *InMemoryStore) Delete(_ context.Context, contentHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, ObjectKey(contentHash))
	return nil
}

// Len returns the number of stored documents.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

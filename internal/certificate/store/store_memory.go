package store

import (
	"fmt"
	"strings"
	"sync"

	"skillforge/internal/certificate/models"
)

// InMemoryStore is the process-lifetime certificate registry.
// Records are never deleted; revocation only adds to the revoked set.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Certificate
	order   []string
	revoked map[string]struct{}
}

// New constructs an empty store.
func New() *InMemoryStore {
	return &InMemoryStore{
		records: make(map[string]models.Certificate),
		revoked: make(map[string]struct{}),
	}
}

// Get returns a copy of the certificate with Verified reflecting revocation.
func (s *InMemoryStore) Get(id string) (models.Certificate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cert, ok := s.records[id]
	if !ok {
		return models.Certificate{}, false
	}
	return s.view(cert), true
}

// Put inserts a new certificate in one critical section.
func (s *InMemoryStore) Put(cert models.Certificate) error {
	if len(cert.Skills) == 0 {
		return fmt.Errorf("%s has no skills: %w", cert.ID, ErrInvariant)
	}
	if cert.ExpirationDate != nil && !cert.ExpirationDate.After(cert.IssueDate) {
		return fmt.Errorf("%s expires before it was issued: %w", cert.ID, ErrInvariant)
	}

	stored := cert.Clone()
	stored.Verified = false

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[cert.ID]; exists {
		return fmt.Errorf("%s: %w", cert.ID, ErrDuplicateID)
	}
	s.records[cert.ID] = stored
	s.order = append(s.order, cert.ID)
	return nil
}

// Revoke marks id as revoked. Revoking twice succeeds.
func (s *InMemoryStore) Revoke(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	s.revoked[id] = struct{}{}
	return nil
}

// IsRevoked reports membership in the revocation set.
func (s *InMemoryStore) IsRevoked(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[id]
	return ok
}

// Exists reports whether id was ever issued.
func (s *InMemoryStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok
}

// Len returns the number of issued certificates, revoked included.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// ListByOwnerAddress returns the certificates issued to address, oldest first.
// Hex addresses compare case-insensitively.
func (s *InMemoryStore) ListByOwnerAddress(address string) []models.Certificate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Certificate, 0)
	for _, id := range s.order {
		cert := s.records[id]
		if strings.EqualFold(cert.RecipientAddress, address) {
			out = append(out, s.view(cert))
		}
	}
	return out
}

// Seed inserts certificates, skipping ids that already exist.
// It returns the number inserted.
func (s *InMemoryStore) Seed(certs ...models.Certificate) int {
	inserted := 0
	for _, cert := range certs {
		if err := s.Put(cert); err == nil {
			inserted++
		}
	}
	return inserted
}

// view must be called with mu held.
func (s *InMemoryStore) view(cert models.Certificate) models.Certificate {
	out := cert.Clone()
	_, revoked := s.revoked[cert.ID]
	out.Verified = !revoked
	return out
}

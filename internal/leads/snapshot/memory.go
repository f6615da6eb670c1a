package snapshot

import (
	"context"
	"sync"

	"agencyhunter_backend/internal/leads/domain"
)

// MemoryStore keeps the snapshot document in process memory. Used in tests
// and as the zero-infrastructure development backend.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context) ([]domain.SavedLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	return Decode(s.data)
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, leads []domain.SavedLead) error {
	data, err := Encode(leads)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the slot with an unreadable document. Test helper.
func (s *MemoryStore) Corrupt() {
	s.mu.Lock()
	s.data = []byte("{not json")
	s.mu.Unlock()
}

var _ Store = (*MemoryStore)(nil)

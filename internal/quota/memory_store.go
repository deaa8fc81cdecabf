package quota

import (
	"context"
	"sync"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// MemoryStore keeps quota records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.QuotaRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.QuotaRecord)}
}

func (s *MemoryStore) Load(ctx context.Context, id domain.Identity) (domain.QuotaRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id.Key()]
	return rec, ok, nil
}

func (s *MemoryStore) Save(ctx context.Context, id domain.Identity, rec domain.QuotaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id.Key()] = rec
	return nil
}

var _ domain.QuotaRepository = (*MemoryStore)(nil)

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/medmatch/intake/internal/record"
)

// MemoryStore keeps snapshots in process memory, keyed like the durable
// stores so it can stand in for them in tests and single-run tooling.
type MemoryStore struct {
	mu   sync.RWMutex
	key  string
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store for one snapshot key.
func NewMemoryStore(key string) *MemoryStore {
	return &MemoryStore{key: key, data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context) (*record.Record, error) {
	s.mu.RLock()
	raw, ok := s.data[s.key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNoSnapshot
	}
	return decode(raw)
}

func (s *MemoryStore) Save(ctx context.Context, r *record.Record) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	s.mu.Lock()
	s.data[s.key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	delete(s.data, s.key)
	s.mu.Unlock()
	return nil
}

// decode parses stored bytes and rejects structurally implausible snapshots
// so a corrupted store never leaks a half-formed record into the engine.
func decode(raw []byte) (*record.Record, error) {
	r := &record.Record{}
	if err := json.Unmarshal(raw, r); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := r.WellFormed(); err != nil {
		return nil, fmt.Errorf("implausible snapshot: %w", err)
	}
	return r, nil
}

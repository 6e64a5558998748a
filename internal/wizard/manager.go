package wizard

import (
	"context"
	"sync"

	"github.com/medmatch/intake/internal/shared/config"
	"github.com/medmatch/intake/internal/shared/errors"
	"github.com/medmatch/intake/internal/shared/metrics"
	"github.com/medmatch/intake/internal/shared/types"
	"github.com/medmatch/intake/internal/snapshot"
)

// StoreFactory builds the snapshot store for one session key.
type StoreFactory func(ctx context.Context, key string) (snapshot.Store, error)

// Manager owns the live engines, one per respondent session. Engines are
// created lazily: a session whose engine was dropped (say after a restart)
// gets a fresh engine that restores itself from the session's snapshot.
type Manager struct {
	mu       sync.Mutex
	engines  map[types.ID]*Engine
	newStore StoreFactory
	prefix   string
}

// NewManager creates a session manager. The key prefix namespaces snapshot
// keys so several deployments can share one backend.
func NewManager(cfg config.SnapshotConfig, newStore StoreFactory) *Manager {
	return &Manager{
		engines:  make(map[types.ID]*Engine),
		newStore: newStore,
		prefix:   cfg.KeyPrefix,
	}
}

// StartSession creates a new session with a fresh engine and returns its id.
func (m *Manager) StartSession(ctx context.Context) (types.ID, *Engine, error) {
	id := types.NewID()
	engine, err := m.build(ctx, id)
	if err != nil {
		return "", nil, err
	}

	m.mu.Lock()
	m.engines[id] = engine
	m.mu.Unlock()

	metrics.RecordSessionStarted()
	return id, engine, nil
}

// Engine returns the engine for a session, reviving it from its snapshot if
// the in-memory instance is gone.
func (m *Manager) Engine(ctx context.Context, sessionID types.ID) (*Engine, error) {
	m.mu.Lock()
	if e, ok := m.engines[sessionID]; ok {
		m.mu.Unlock()
		return e, nil
	}
	m.mu.Unlock()

	engine, err := m.build(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// another request may have revived it concurrently
	if e, ok := m.engines[sessionID]; ok {
		return e, nil
	}
	m.engines[sessionID] = engine
	return engine, nil
}

// Drop forgets a session's engine. Its snapshot stays untouched.
func (m *Manager) Drop(sessionID types.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, sessionID)
}

func (m *Manager) build(ctx context.Context, sessionID types.ID) (*Engine, error) {
	store, err := m.newStore(ctx, m.prefix+"-"+sessionID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open snapshot store")
	}
	return NewEngine(ctx, store), nil
}

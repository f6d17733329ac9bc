package store

import (
	"context"
	"fmt"
	"sync"
)

// Manager is a keyed registry of stores, one per signed-in user.
// Stores are created on login (activation) and disposed on logout;
// nothing here is a process-global singleton.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	remote    Remote
	snapshots *SnapshotDir
	listeners []Listener
}

// NewManager creates a manager whose stores mirror to the given remote
func NewManager(remote Remote) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		remote: remote,
	}
}

// NewLocalManager creates a manager without a remote backend. State is
// persisted per user as JSON snapshots under dir.
func NewLocalManager(dir string) (*Manager, error) {
	snapshots, err := NewSnapshotDir(dir)
	if err != nil {
		return nil, err
	}
	return &Manager{
		stores:    make(map[string]*Store),
		snapshots: snapshots,
	}, nil
}

// OnEvent registers a listener attached to every store the manager
// activates from now on.
func (m *Manager) OnEvent(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Activate returns the user's store, loading its state on first use.
// Activating an already active user returns the existing store: the
// remote is the source of truth only at load time (last load wins).
func (m *Manager) Activate(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	s := newStore(userID, m.remote, m.snapshots, listeners)

	switch {
	case m.remote != nil:
		products, err := m.remote.LoadProducts(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load products: %w", err)
		}
		sales, err := m.remote.LoadSales(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load sales: %w", err)
		}
		s.Init(products, sales)
	case m.snapshots != nil:
		products, sales, err := m.snapshots.Load(userID)
		if err != nil {
			return nil, err
		}
		s.Init(products, sales)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another activation may have raced us; first one in wins.
	if existing, ok := m.stores[userID]; ok {
		return existing, nil
	}
	m.stores[userID] = s
	return s, nil
}

// Get returns the active store for a user, if any
func (m *Manager) Get(userID string) (*Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[userID]
	return s, ok
}

// Dispose drops the user's store after draining its mirror writes.
// Called on logout.
func (m *Manager) Dispose(userID string) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	delete(m.stores, userID)
	m.mu.Unlock()

	if ok {
		s.Flush()
	}
}

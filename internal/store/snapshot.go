package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

// SnapshotDir persists per-user state as JSON files when no remote
// backend is configured: one namespaced blob of {products, sales} per
// user, restored on the next activation.
type SnapshotDir struct {
	dir string

	// mu serializes writers. Mirror goroutines fire concurrently and
	// share a temp file name per user, so unguarded saves could rename
	// each other's half-written bytes into place.
	mu sync.Mutex
}

type snapshot struct {
	Products []inventorydomain.Product `json:"products"`
	Sales    []salesdomain.Sale        `json:"sales"`
}

// NewSnapshotDir creates the snapshot directory if needed
func NewSnapshotDir(dir string) (*SnapshotDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotDir{dir: dir}, nil
}

func (s *SnapshotDir) path(userID string) string {
	return filepath.Join(s.dir, "shopstock-"+userID+".json")
}

// Save writes the user's snapshot, replacing any previous one
func (s *SnapshotDir) Save(userID string, products []inventorydomain.Product, sales []salesdomain.Sale) error {
	data, err := json.Marshal(snapshot{Products: products, Sales: sales})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp, s.path(userID))
}

// Load restores the user's snapshot. A missing snapshot is not an
// error: it returns empty state, as for a brand-new user.
func (s *SnapshotDir) Load(userID string) ([]inventorydomain.Product, []salesdomain.Sale, error) {
	data, err := os.ReadFile(s.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap.Products, snap.Sales, nil
}

package seed

import (
	"fmt"
	"math/rand"
	"sync"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

// Marker guards the seed-once semantics. Implemented by the user
// repository's conditional update on the initialized column.
type Marker interface {
	MarkInitialized(userID string) (bool, error)
}

// productCreator and saleCreator are the narrow repository slices the
// seeder writes through. Seeded sales are historical records: they are
// persisted directly, without stock decrements.
type productCreator interface {
	Create(product *inventorydomain.Product) error
}

type saleCreator interface {
	Create(sale *salesdomain.Sale) error
}

// Seeder writes the default catalog and demo sales for a user exactly
// once. Losing the marker race makes EnsureSeeded a no-op.
type Seeder struct {
	markers  Marker
	products productCreator
	sales    saleCreator

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeder creates a seeder. rng may be seeded deterministically in tests.
func NewSeeder(markers Marker, products productCreator, sales saleCreator, rng *rand.Rand) *Seeder {
	return &Seeder{markers: markers, products: products, sales: sales, rng: rng}
}

// EnsureSeeded seeds the user's shop if it has never been seeded.
// Returns true when this call performed the seeding.
func (s *Seeder) EnsureSeeded(userID string) (bool, error) {
	won, err := s.markers.MarkInitialized(userID)
	if err != nil {
		return false, fmt.Errorf("failed to check initialization marker: %w", err)
	}
	if !won {
		return false, nil
	}

	products := DefaultProducts(userID)
	for i := range products {
		if err := s.products.Create(&products[i]); err != nil {
			return false, fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	s.mu.Lock()
	sales := DemoSales(userID, products, s.rng)
	s.mu.Unlock()
	for i := range sales {
		if err := s.sales.Create(&sales[i]); err != nil {
			return false, fmt.Errorf("failed to seed demo sale: %w", err)
		}
	}
	return true, nil
}

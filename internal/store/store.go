// Package store holds the per-user in-memory application state: the
// product catalog and sales history a signed-in shop owner works against.
// Mutations apply to memory synchronously and are mirrored to durable
// storage asynchronously, so readers never wait on the network.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
	"github.com/shopstock/shopstock/pkg/logger"
)

// EventType identifies a store mutation
type EventType string

const (
	EventInit           EventType = "store.init"
	EventProductAdded   EventType = "product.added"
	EventProductUpdated EventType = "product.updated"
	EventProductDeleted EventType = "product.deleted"
	EventSaleAdded      EventType = "sale.added"
	EventStockDecreased EventType = "stock.decreased"
)

// Event describes a completed store mutation, delivered to subscribers
// after the in-memory state has been updated.
type Event struct {
	Type      EventType
	UserID    string
	Product   *inventorydomain.Product
	Sale      *salesdomain.Sale
	ProductID string
	Quantity  int
}

// Listener receives store events. Listeners run synchronously with the
// mutator, so they must not block.
type Listener func(Event)

// Store is the in-memory source of truth for one user's catalog and
// sales. All mutators complete against memory before returning; the
// remote mirror is fire-and-forget.
type Store struct {
	userID string

	mu       sync.RWMutex
	products []inventorydomain.Product
	sales    []salesdomain.Sale

	remote    Remote       // nil when running without a backend
	snapshots *SnapshotDir // local fallback persistence, nil when remote is set

	listenerMu sync.RWMutex
	listeners  map[int]Listener
	nextID     int

	mirrors sync.WaitGroup // outstanding asynchronous mirror writes
}

func newStore(userID string, remote Remote, snapshots *SnapshotDir, listeners []Listener) *Store {
	s := &Store{
		userID:    userID,
		remote:    remote,
		snapshots: snapshots,
		listeners: make(map[int]Listener),
	}
	for _, l := range listeners {
		s.Subscribe(l)
	}
	return s
}

// UserID returns the identity this store is scoped to
func (s *Store) UserID() string {
	return s.userID
}

// Subscribe registers a listener and returns its id for Unsubscribe
func (s *Store) Subscribe(l Listener) int {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return id
}

// Unsubscribe removes a previously registered listener
func (s *Store) Unsubscribe(id int) {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	delete(s.listeners, id)
}

func (s *Store) notify(ev Event) {
	ev.UserID = s.userID
	s.listenerMu.RLock()
	defer s.listenerMu.RUnlock()
	for _, l := range s.listeners {
		l(ev)
	}
}

// Init replaces the entire in-memory state. Called once after the
// user's data has been loaded or seeded. Idempotent.
func (s *Store) Init(products []inventorydomain.Product, sales []salesdomain.Sale) {
	s.mu.Lock()
	s.products = append([]inventorydomain.Product(nil), products...)
	s.sales = append([]salesdomain.Sale(nil), sales...)
	s.mu.Unlock()

	s.notify(Event{Type: EventInit})
}

// Products returns a copy of the current catalog, newest first
func (s *Store) Products() []inventorydomain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]inventorydomain.Product(nil), s.products...)
}

// Sales returns a copy of the sales history, newest first
func (s *Store) Sales() []salesdomain.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]salesdomain.Sale(nil), s.sales...)
}

// Product returns the product with the given id, if present
func (s *Store) Product(id string) (inventorydomain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return inventorydomain.Product{}, false
}

// AddProduct assigns an id to the draft, inserts it at the front of the
// catalog and mirrors the insert. The in-memory insert is never rolled
// back on a remote failure.
func (s *Store) AddProduct(draft inventorydomain.Product) inventorydomain.Product {
	if draft.ID == "" {
		draft.ID = uuid.NewString()
	}
	draft.UserID = s.userID
	now := time.Now()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	s.mu.Lock()
	s.products = append([]inventorydomain.Product{draft}, s.products...)
	s.mu.Unlock()

	s.notify(Event{Type: EventProductAdded, Product: &draft})

	product := draft
	s.mirror("create product", func(ctx context.Context) error {
		if s.remote == nil {
			return nil
		}
		return s.remote.CreateProduct(ctx, &product)
	})
	return draft
}

// UpdateProduct replaces the stored product with a matching id and
// mirrors the full replacement. Unknown ids are ignored.
func (s *Store) UpdateProduct(product inventorydomain.Product) {
	product.UserID = s.userID
	product.UpdatedAt = time.Now()

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == product.ID {
			product.CreatedAt = s.products[i].CreatedAt
			s.products[i] = product
			break
		}
	}
	s.mu.Unlock()

	s.notify(Event{Type: EventProductUpdated, Product: &product})

	updated := product
	s.mirror("update product", func(ctx context.Context) error {
		if s.remote == nil {
			return nil
		}
		return s.remote.UpdateProduct(ctx, &updated)
	})
}

// DeleteProduct removes the product from memory and mirrors the delete.
// Sales referencing the id are left alone: the reference is soft and
// resolved at display time.
func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()

	s.notify(Event{Type: EventProductDeleted, ProductID: id})

	s.mirror("delete product", func(ctx context.Context) error {
		if s.remote == nil {
			return nil
		}
		return s.remote.DeleteProduct(ctx, s.userID, id)
	})
}

// AddSale computes the derived total, assigns an id and timestamp,
// inserts the sale at the front of the history, clamp-decrements the
// stock of every referenced product, and mirrors the sale plus all
// decrements as one atomic batch.
func (s *Store) AddSale(items []salesdomain.SaleItem) salesdomain.Sale {
	sale := salesdomain.Sale{
		ID:     uuid.NewString(),
		UserID: s.userID,
		Date:   time.Now(),
		Items:  append([]salesdomain.SaleItem(nil), items...),
	}
	sale.Total = salesdomain.ComputeTotal(sale.Items)
	sale.CreatedAt = sale.Date
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}

	s.mu.Lock()
	s.sales = append([]salesdomain.Sale{sale}, s.sales...)
	for _, item := range sale.Items {
		s.decrementLocked(item.ProductID, item.Quantity)
	}
	s.mu.Unlock()

	s.notify(Event{Type: EventSaleAdded, Sale: &sale})

	recorded := sale
	s.mirror("record sale", func(ctx context.Context) error {
		if s.remote == nil {
			return nil
		}
		return s.remote.RecordSale(ctx, &recorded)
	})
	return sale
}

// DecreaseStock clamps the product's stock at zero and mirrors the
// decrement. Exposed as a standalone primitive for manual adjustments.
func (s *Store) DecreaseStock(productID string, quantity int) {
	s.mu.Lock()
	s.decrementLocked(productID, quantity)
	s.mu.Unlock()

	s.notify(Event{Type: EventStockDecreased, ProductID: productID, Quantity: quantity})

	s.mirror("decrease stock", func(ctx context.Context) error {
		if s.remote == nil {
			return nil
		}
		return s.remote.DecrementStock(ctx, s.userID, productID, quantity)
	})
}

func (s *Store) decrementLocked(productID string, quantity int) {
	for i := range s.products {
		if s.products[i].ID == productID {
			stock := s.products[i].Stock - quantity
			if stock < 0 {
				stock = 0
			}
			s.products[i].Stock = stock
			return
		}
	}
}

// mirror runs a remote write in the background. Failures are logged and
// the optimistic in-memory state is left standing.
func (s *Store) mirror(op string, fn func(ctx context.Context) error) {
	s.mirrors.Add(1)
	go func() {
		defer s.mirrors.Done()
		if err := fn(context.Background()); err != nil {
			logger.Logger.Error().
				Err(err).
				Str("user_id", s.userID).
				Str("operation", op).
				Msg("Remote mirror write failed, keeping local state")
		}
		if s.snapshots != nil {
			if err := s.snapshots.Save(s.userID, s.Products(), s.Sales()); err != nil {
				logger.Logger.Error().
					Err(err).
					Str("user_id", s.userID).
					Msg("Failed to persist local snapshot")
			}
		}
	}()
}

// Flush waits for all outstanding mirror writes. Used on logout and in
// tests; mutators never wait on it.
func (s *Store) Flush() {
	s.mirrors.Wait()
}

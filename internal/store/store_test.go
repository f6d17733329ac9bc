package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

// fakeRemote records mirror writes and can be told to fail
type fakeRemote struct {
	mu         sync.Mutex
	created    []inventorydomain.Product
	updated    []inventorydomain.Product
	deleted    []string
	sales      []salesdomain.Sale
	decrements map[string]int
	fail       bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{decrements: make(map[string]int)}
}

func (f *fakeRemote) LoadProducts(ctx context.Context, userID string) ([]inventorydomain.Product, error) {
	return nil, nil
}

func (f *fakeRemote) LoadSales(ctx context.Context, userID string) ([]salesdomain.Sale, error) {
	return nil, nil
}

func (f *fakeRemote) CreateProduct(ctx context.Context, product *inventorydomain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("remote unavailable")
	}
	f.created = append(f.created, *product)
	return nil
}

func (f *fakeRemote) UpdateProduct(ctx context.Context, product *inventorydomain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, *product)
	return nil
}

func (f *fakeRemote) DeleteProduct(ctx context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) RecordSale(ctx context.Context, sale *salesdomain.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeRemote) DecrementStock(ctx context.Context, userID, id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decrements[id] += quantity
	return nil
}

func activate(t *testing.T, remote Remote) *Store {
	t.Helper()
	m := NewManager(remote)
	s, err := m.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	return s
}

func TestAddProductFrontInsert(t *testing.T) {
	s := activate(t, newFakeRemote())

	first := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	second := s.AddProduct(inventorydomain.Product{Name: "Flour", Price: 60, Stock: 40})

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected generated ids")
	}
	if first.ID == second.ID {
		t.Fatal("ids not unique")
	}

	products := s.Products()
	if len(products) != 2 {
		t.Fatalf("len = %d, want 2", len(products))
	}
	if products[0].Name != "Flour" || products[1].Name != "Rice" {
		t.Fatalf("newest product not first: %q, %q", products[0].Name, products[1].Name)
	}
}

func TestAddProductMirrors(t *testing.T) {
	remote := newFakeRemote()
	s := activate(t, remote)

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	s.Flush()

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.created) != 1 || remote.created[0].ID != p.ID {
		t.Fatalf("mirror write missing: %+v", remote.created)
	}
	if remote.created[0].UserID != "user-1" {
		t.Fatalf("mirrored product not scoped to user: %q", remote.created[0].UserID)
	}
}

func TestRemoteFailureKeepsLocalState(t *testing.T) {
	remote := newFakeRemote()
	remote.fail = true
	s := activate(t, remote)

	s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	s.Flush()

	if len(s.Products()) != 1 {
		t.Fatal("local insert rolled back on remote failure")
	}
}

func TestUpdateProductPreservesCreatedAt(t *testing.T) {
	s := activate(t, newFakeRemote())

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	createdAt := p.CreatedAt

	p.Price = 160
	p.CreatedAt = createdAt.AddDate(1, 0, 0) // callers cannot move creation time
	s.UpdateProduct(p)

	got, ok := s.Product(p.ID)
	if !ok {
		t.Fatal("product missing after update")
	}
	if got.Price != 160 {
		t.Fatalf("price = %v, want 160", got.Price)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Fatal("created at drifted")
	}
}

func TestDeleteProductLeavesSales(t *testing.T) {
	s := activate(t, newFakeRemote())

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 150}})
	s.DeleteProduct(p.ID)
	s.Flush()

	if len(s.Products()) != 0 {
		t.Fatal("product not deleted")
	}
	if len(s.Sales()) != 1 {
		t.Fatal("sale removed with its product")
	}
}

func TestAddSaleComputesTotalAndClampsStock(t *testing.T) {
	remote := newFakeRemote()
	s := activate(t, remote)

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})

	// Quantity exceeds stock: total still charges the full quantity,
	// stock clamps at zero.
	sale := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 7, PriceAtSale: 10}})
	s.Flush()

	if sale.Total != 70 {
		t.Fatalf("total = %v, want 70", sale.Total)
	}
	got, _ := s.Product(p.ID)
	if got.Stock != 0 {
		t.Fatalf("stock = %d, want 0", got.Stock)
	}

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if len(remote.sales) != 1 {
		t.Fatalf("sale not mirrored: %+v", remote.sales)
	}
	if len(remote.sales[0].Items) != 1 {
		t.Fatalf("sale items not mirrored: %+v", remote.sales[0].Items)
	}
}

func TestAddSaleFrontInsert(t *testing.T) {
	s := activate(t, newFakeRemote())

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	first := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})
	second := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 2, PriceAtSale: 10}})

	sales := s.Sales()
	if len(sales) != 2 {
		t.Fatalf("len = %d, want 2", len(sales))
	}
	if sales[0].ID != second.ID || sales[1].ID != first.ID {
		t.Fatal("newest sale not first")
	}
}

func TestDecreaseStockClampsAtZero(t *testing.T) {
	remote := newFakeRemote()
	s := activate(t, remote)

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 3})
	s.DecreaseStock(p.ID, 10)
	s.Flush()

	got, _ := s.Product(p.ID)
	if got.Stock != 0 {
		t.Fatalf("stock = %d, want 0", got.Stock)
	}

	remote.mu.Lock()
	defer remote.mu.Unlock()
	if remote.decrements[p.ID] != 10 {
		t.Fatalf("decrement not mirrored with requested quantity: %d", remote.decrements[p.ID])
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := activate(t, newFakeRemote())

	var mu sync.Mutex
	var got []EventType
	s.Subscribe(func(ev Event) {
		mu.Lock()
		got = append(got, ev.Type)
		mu.Unlock()
		if ev.UserID != "user-1" {
			t.Errorf("event user = %q", ev.UserID)
		}
	})

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})
	s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})
	s.DeleteProduct(p.ID)

	mu.Lock()
	defer mu.Unlock()
	want := []EventType{EventProductAdded, EventSaleAdded, EventProductDeleted}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := activate(t, newFakeRemote())

	count := 0
	id := s.Subscribe(func(Event) { count++ })
	s.AddProduct(inventorydomain.Product{Name: "Rice"})
	s.Unsubscribe(id)
	s.AddProduct(inventorydomain.Product{Name: "Flour"})

	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestManagerActivateIsIdempotent(t *testing.T) {
	m := NewManager(newFakeRemote())

	a, err := m.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	a.AddProduct(inventorydomain.Product{Name: "Rice"})

	b, err := m.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("second activation replaced the live store")
	}
	if len(b.Products()) != 1 {
		t.Fatal("state lost across activations")
	}
}

func TestManagerDispose(t *testing.T) {
	m := NewManager(newFakeRemote())

	if _, err := m.Activate(context.Background(), "user-1"); err != nil {
		t.Fatal(err)
	}
	m.Dispose("user-1")

	if _, ok := m.Get("user-1"); ok {
		t.Fatal("store still registered after dispose")
	}
}

func TestLocalManagerSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m, err := NewLocalManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	s, err := m.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}

	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 150, Stock: 50})
	s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 2, PriceAtSale: 150}})
	s.Flush()
	m.Dispose("user-1")

	// A fresh manager over the same directory restores the state
	m2, err := NewLocalManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := m2.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}

	products := restored.Products()
	if len(products) != 1 || products[0].Name != "Rice" || products[0].Stock != 48 {
		t.Fatalf("restored products = %+v", products)
	}
	sales := restored.Sales()
	if len(sales) != 1 || sales[0].Total != 300 {
		t.Fatalf("restored sales = %+v", sales)
	}
}

func TestSnapshotConcurrentSaves(t *testing.T) {
	snap, err := NewSnapshotDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Mirror goroutines save concurrently for the same user. Every save
	// must land whole: the surviving file is one writer's catalog, never
	// a torn mix of two.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			name := fmt.Sprintf("writer-%d", writer)
			products := []inventorydomain.Product{
				{ID: name + "-a", Name: name},
				{ID: name + "-b", Name: name},
			}
			if err := snap.Save("user-1", products, nil); err != nil {
				t.Errorf("Save: %v", err)
			}
		}(i)
	}
	wg.Wait()

	products, _, err := snap.Load("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("len(products) = %d, want 2", len(products))
	}
	if products[0].Name != products[1].Name {
		t.Fatalf("snapshot mixes writers: %q vs %q", products[0].Name, products[1].Name)
	}
}

func TestManagerOnEventAttachesToNewStores(t *testing.T) {
	m := NewManager(newFakeRemote())

	var mu sync.Mutex
	var got []EventType
	m.OnEvent(func(ev Event) {
		mu.Lock()
		got = append(got, ev.Type)
		mu.Unlock()
	})

	s, err := m.Activate(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	s.AddProduct(inventorydomain.Product{Name: "Rice"})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != EventInit || got[1] != EventProductAdded {
		t.Fatalf("events = %v", got)
	}
}

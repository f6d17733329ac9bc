package store

import (
	"context"
	"testing"
	"time"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

// plainProducts implements only the base repository surface.
type plainProducts struct {
	calls []string
}

func (p *plainProducts) Create(product *inventorydomain.Product) error {
	p.calls = append(p.calls, "Create")
	return nil
}

func (p *plainProducts) FindByID(userID, id string) (*inventorydomain.Product, error) {
	return nil, nil
}

func (p *plainProducts) FindAll(userID string, limit, offset int) ([]inventorydomain.Product, error) {
	p.calls = append(p.calls, "FindAll")
	return nil, nil
}

func (p *plainProducts) FindByCategory(userID, category string, limit, offset int) ([]inventorydomain.Product, error) {
	return nil, nil
}

func (p *plainProducts) FindLowStock(userID string) ([]inventorydomain.Product, error) {
	return nil, nil
}

func (p *plainProducts) Update(product *inventorydomain.Product) error {
	p.calls = append(p.calls, "Update")
	return nil
}

func (p *plainProducts) Delete(userID, id string) error {
	p.calls = append(p.calls, "Delete")
	return nil
}

func (p *plainProducts) Count(userID string) (int64, error) {
	return 0, nil
}

func (p *plainProducts) DecrementStock(userID, id string, quantity int) error {
	p.calls = append(p.calls, "DecrementStock")
	return nil
}

// instrumentedProducts adds the span-recording variants on top.
type instrumentedProducts struct {
	plainProducts
}

func (p *instrumentedProducts) CreateWithContext(ctx context.Context, product *inventorydomain.Product) error {
	p.calls = append(p.calls, "CreateWithContext")
	return nil
}

func (p *instrumentedProducts) UpdateWithContext(ctx context.Context, product *inventorydomain.Product) error {
	p.calls = append(p.calls, "UpdateWithContext")
	return nil
}

func (p *instrumentedProducts) DeleteWithContext(ctx context.Context, userID, id string) error {
	p.calls = append(p.calls, "DeleteWithContext")
	return nil
}

func (p *instrumentedProducts) FindAllWithContext(ctx context.Context, userID string, limit, offset int) ([]inventorydomain.Product, error) {
	p.calls = append(p.calls, "FindAllWithContext")
	return nil, nil
}

func (p *instrumentedProducts) DecrementStockWithContext(ctx context.Context, userID, id string, quantity int) error {
	p.calls = append(p.calls, "DecrementStockWithContext")
	return nil
}

type stubSales struct{}

func (stubSales) RecordSale(sale *salesdomain.Sale) error { return nil }
func (stubSales) Create(sale *salesdomain.Sale) error     { return nil }
func (stubSales) FindByID(userID, id string) (*salesdomain.Sale, error) {
	return nil, nil
}
func (stubSales) FindAll(userID string, limit, offset int) ([]salesdomain.Sale, error) {
	return nil, nil
}
func (stubSales) FindByDateRange(userID string, from, to time.Time) ([]salesdomain.Sale, error) {
	return nil, nil
}
func (stubSales) Count(userID string) (int64, error) { return 0, nil }

func TestRepositoryRemotePrefersInstrumentedVariants(t *testing.T) {
	products := &instrumentedProducts{}
	remote := NewRepositoryRemote(products, stubSales{})
	ctx := context.Background()

	if _, err := remote.LoadProducts(ctx, "user-1"); err != nil {
		t.Fatal(err)
	}
	if err := remote.CreateProduct(ctx, &inventorydomain.Product{ID: "p1"}); err != nil {
		t.Fatal(err)
	}
	if err := remote.UpdateProduct(ctx, &inventorydomain.Product{ID: "p1"}); err != nil {
		t.Fatal(err)
	}
	if err := remote.DecrementStock(ctx, "user-1", "p1", 2); err != nil {
		t.Fatal(err)
	}
	if err := remote.DeleteProduct(ctx, "user-1", "p1"); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"FindAllWithContext",
		"CreateWithContext",
		"UpdateWithContext",
		"DecrementStockWithContext",
		"DeleteWithContext",
	}
	if len(products.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", products.calls, want)
	}
	for i, call := range want {
		if products.calls[i] != call {
			t.Fatalf("calls[%d] = %q, want %q", i, products.calls[i], call)
		}
	}
}

func TestRepositoryRemoteFallsBackToBaseRepository(t *testing.T) {
	products := &plainProducts{}
	remote := NewRepositoryRemote(products, stubSales{})
	ctx := context.Background()

	if _, err := remote.LoadProducts(ctx, "user-1"); err != nil {
		t.Fatal(err)
	}
	if err := remote.CreateProduct(ctx, &inventorydomain.Product{ID: "p1"}); err != nil {
		t.Fatal(err)
	}
	if err := remote.DecrementStock(ctx, "user-1", "p1", 2); err != nil {
		t.Fatal(err)
	}

	want := []string{"FindAll", "Create", "DecrementStock"}
	if len(products.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", products.calls, want)
	}
	for i, call := range want {
		if products.calls[i] != call {
			t.Fatalf("calls[%d] = %q, want %q", i, products.calls[i], call)
		}
	}
}

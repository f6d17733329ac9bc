package command

import (
	"context"
	"testing"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

func activeStore(t *testing.T, userID string) (*store.Manager, *store.Store) {
	t.Helper()
	stores := store.NewManager(nil)
	s, err := stores.Activate(context.Background(), userID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	return stores, s
}

func TestRecordSale(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})

	handler := NewRecordSaleHandler(stores)
	sale, err := handler.Handle(RecordSaleCommand{
		UserID: "user-1",
		Items:  []SaleItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if sale.Total != 20 {
		t.Fatalf("total = %v, want 20", sale.Total)
	}
	if len(sale.Items) != 1 || sale.Items[0].PriceAtSale != 10 {
		t.Fatalf("items = %+v", sale.Items)
	}
	got, _ := s.Product(p.ID)
	if got.Stock != 3 {
		t.Fatalf("stock = %d, want 3", got.Stock)
	}
}

func TestRecordSaleClampsStock(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})

	handler := NewRecordSaleHandler(stores)
	sale, err := handler.Handle(RecordSaleCommand{
		UserID: "user-1",
		Items:  []SaleItemInput{{ProductID: p.ID, Quantity: 7}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// The sale charges for the full quantity even though the decrement clamps
	if sale.Total != 70 {
		t.Fatalf("total = %v, want 70", sale.Total)
	}
	got, _ := s.Product(p.ID)
	if got.Stock != 0 {
		t.Fatalf("stock = %d, want 0", got.Stock)
	}
}

func TestRecordSaleSnapshotsPrice(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})

	handler := NewRecordSaleHandler(stores)
	sale, err := handler.Handle(RecordSaleCommand{
		UserID: "user-1",
		Items:  []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	p.Price = 99
	s.UpdateProduct(p)

	if sale.Items[0].PriceAtSale != 10 {
		t.Fatalf("price at sale = %v, want 10", sale.Items[0].PriceAtSale)
	}
	if sale.Total != 10 {
		t.Fatalf("total = %v, want 10", sale.Total)
	}
}

func TestRecordSaleValidation(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 5})

	handler := NewRecordSaleHandler(stores)

	cases := []struct {
		name string
		cmd  RecordSaleCommand
	}{
		{"no items", RecordSaleCommand{UserID: "user-1"}},
		{"zero quantity", RecordSaleCommand{UserID: "user-1", Items: []SaleItemInput{{ProductID: p.ID, Quantity: 0}}}},
		{"negative quantity", RecordSaleCommand{UserID: "user-1", Items: []SaleItemInput{{ProductID: p.ID, Quantity: -1}}}},
		{"unknown product", RecordSaleCommand{UserID: "user-1", Items: []SaleItemInput{{ProductID: "missing", Quantity: 1}}}},
		{"no session", RecordSaleCommand{UserID: "user-2", Items: []SaleItemInput{{ProductID: p.ID, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := handler.Handle(tc.cmd); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if len(s.Sales()) != 0 {
		t.Fatal("rejected commands recorded sales")
	}
}

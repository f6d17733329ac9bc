package query

import (
	"context"
	"testing"
	"time"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
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

func TestListSales(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	first := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})
	second := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 3, PriceAtSale: 10}})

	handler := NewListSalesHandler(stores)
	views, err := handler.Handle(ListSalesQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	if views[0].ID != second.ID || views[1].ID != first.ID {
		t.Fatal("sales not newest first")
	}
	if views[0].Total != 30 {
		t.Fatalf("total = %v, want 30", views[0].Total)
	}
	if views[0].Items[0].ProductName != "Rice" {
		t.Fatalf("product name = %q", views[0].Items[0].ProductName)
	}
}

func TestListSalesDeletedProduct(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})
	s.DeleteProduct(p.ID)

	handler := NewListSalesHandler(stores)
	views, err := handler.Handle(ListSalesQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	if len(views) != 1 {
		t.Fatalf("len = %d, want 1", len(views))
	}
	if views[0].Items[0].ProductName != UnknownProduct {
		t.Fatalf("product name = %q, want %q", views[0].Items[0].ProductName, UnknownProduct)
	}
	if views[0].Items[0].PriceAtSale != 10 {
		t.Fatalf("price at sale = %v, want 10", views[0].Items[0].PriceAtSale)
	}
}

func TestListSalesDateRange(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	sale := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 1, PriceAtSale: 10}})

	handler := NewListSalesHandler(stores)

	views, err := handler.Handle(ListSalesQuery{
		UserID: "user-1",
		From:   sale.Date.Add(-time.Hour),
		To:     sale.Date.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("in-range len = %d, want 1", len(views))
	}

	views, err = handler.Handle(ListSalesQuery{
		UserID: "user-1",
		From:   sale.Date.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 0 {
		t.Fatalf("out-of-range len = %d, want 0", len(views))
	}
}

func TestListSalesNoSession(t *testing.T) {
	stores := store.NewManager(nil)
	handler := NewListSalesHandler(stores)
	if _, err := handler.Handle(ListSalesQuery{UserID: "ghost"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSale(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(inventorydomain.Product{Name: "Rice", Price: 10, Stock: 50})
	sale := s.AddSale([]salesdomain.SaleItem{{ProductID: p.ID, Quantity: 2, PriceAtSale: 10}})

	handler := NewGetSaleHandler(stores)
	view, err := handler.Handle(GetSaleQuery{UserID: "user-1", SaleID: sale.ID})
	if err != nil {
		t.Fatal(err)
	}
	if view.ID != sale.ID || view.Total != 20 {
		t.Fatalf("view = %+v", view)
	}

	if _, err := handler.Handle(GetSaleQuery{UserID: "user-1", SaleID: "missing"}); err == nil {
		t.Fatal("expected error for unknown sale")
	}
	if _, err := handler.Handle(GetSaleQuery{UserID: "user-1"}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

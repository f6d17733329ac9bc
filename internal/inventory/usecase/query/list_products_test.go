package query

import (
	"context"
	"math"
	"testing"

	"github.com/shopstock/shopstock/internal/inventory/domain"
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

func seedCatalog(s *store.Store) {
	s.AddProduct(domain.Product{Name: "Rice", Price: 150, Stock: 50, LowStockThreshold: 10, Category: "Grains"})
	s.AddProduct(domain.Product{Name: "Ghee", Price: 550, Stock: 4, LowStockThreshold: 5, Category: "Dairy"})
	s.AddProduct(domain.Product{Name: "Onions", Price: 30, Stock: 20, LowStockThreshold: 20, Category: "Vegetables"})
}

func TestListProducts(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	seedCatalog(s)

	handler := NewListProductsHandler(stores)
	products, err := handler.Handle(ListProductsQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	if len(products) != 3 {
		t.Fatalf("len = %d, want 3", len(products))
	}
	if products[0].Name != "Onions" {
		t.Fatalf("newest product not first: %q", products[0].Name)
	}
}

func TestListProductsByCategory(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	seedCatalog(s)

	handler := NewListProductsHandler(stores)
	products, err := handler.Handle(ListProductsQuery{UserID: "user-1", Category: "Dairy"})
	if err != nil {
		t.Fatal(err)
	}

	if len(products) != 1 || products[0].Name != "Ghee" {
		t.Fatalf("products = %+v", products)
	}

	products, err = handler.Handle(ListProductsQuery{UserID: "user-1", Category: "Frozen"})
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 {
		t.Fatalf("unknown category returned %d products", len(products))
	}
}

func TestGetProduct(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(domain.Product{Name: "Rice", Price: 150, Stock: 50})

	handler := NewGetProductHandler(stores)
	got, err := handler.Handle(GetProductQuery{UserID: "user-1", ProductID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Rice" {
		t.Fatalf("got = %+v", got)
	}

	if _, err := handler.Handle(GetProductQuery{UserID: "user-1", ProductID: "missing"}); err == nil {
		t.Fatal("expected error for unknown product")
	}
	if _, err := handler.Handle(GetProductQuery{UserID: "user-1"}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestListLowStock(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	seedCatalog(s)

	handler := NewListLowStockHandler(stores)
	low, err := handler.Handle(ListLowStockQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	// Ghee is below its threshold, Onions sits exactly at it
	if len(low) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(low), low)
	}
	names := map[string]bool{}
	for _, p := range low {
		names[p.Name] = true
	}
	if !names["Ghee"] || !names["Onions"] {
		t.Fatalf("low stock = %v", names)
	}
}

func TestGetStats(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	seedCatalog(s)

	handler := NewGetStatsHandler(stores)
	stats, err := handler.Handle(GetStatsQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}

	if stats.TotalProducts != 3 {
		t.Fatalf("total products = %d", stats.TotalProducts)
	}
	if stats.TotalStock != 74 {
		t.Fatalf("total stock = %d", stats.TotalStock)
	}
	if stats.LowStockCount != 2 {
		t.Fatalf("low stock count = %d", stats.LowStockCount)
	}
	if stats.TotalCategories != 3 {
		t.Fatalf("categories = %d", stats.TotalCategories)
	}
	wantAvg := (150.0 + 550 + 30) / 3
	if math.Abs(stats.AveragePrice-wantAvg) > 1e-9 {
		t.Fatalf("average price = %v, want %v", stats.AveragePrice, wantAvg)
	}
	wantValue := 150.0*50 + 550*4 + 30*20
	if math.Abs(stats.InventoryValue-wantValue) > 1e-9 {
		t.Fatalf("inventory value = %v, want %v", stats.InventoryValue, wantValue)
	}
}

func TestGetStatsEmptyCatalog(t *testing.T) {
	stores, _ := activeStore(t, "user-1")

	handler := NewGetStatsHandler(stores)
	stats, err := handler.Handle(GetStatsQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalProducts != 0 || stats.AveragePrice != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}

package command

import (
	"context"
	"testing"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

func mustProduct(name string, price float64, stock int) domain.Product {
	return domain.Product{Name: name, Price: price, Stock: stock, LowStockThreshold: 1}
}

func activeStore(t *testing.T, userID string) (*store.Manager, *store.Store) {
	t.Helper()
	stores := store.NewManager(nil)
	s, err := stores.Activate(context.Background(), userID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	return stores, s
}

func TestAddProduct(t *testing.T) {
	stores, s := activeStore(t, "user-1")

	handler := NewAddProductHandler(stores)
	product, err := handler.Handle(AddProductCommand{
		UserID:            "user-1",
		Name:              "Basmati Rice",
		Description:       "Long-grain rice",
		Price:             150,
		Stock:             50,
		LowStockThreshold: 10,
		Category:          "Grains",
		Unit:              "kg",
	})
	if err != nil {
		t.Fatal(err)
	}

	if product.ID == "" {
		t.Fatal("no id assigned")
	}
	if product.UserID != "user-1" {
		t.Fatalf("user id = %q", product.UserID)
	}
	if product.CreatedAt.IsZero() || product.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}

	products := s.Products()
	if len(products) != 1 || products[0].Name != "Basmati Rice" {
		t.Fatalf("catalog = %+v", products)
	}
}

func TestAddProductValidation(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	handler := NewAddProductHandler(stores)

	cases := []struct {
		name string
		cmd  AddProductCommand
	}{
		{"empty name", AddProductCommand{UserID: "user-1", Price: 10}},
		{"negative price", AddProductCommand{UserID: "user-1", Name: "Rice", Price: -1}},
		{"negative stock", AddProductCommand{UserID: "user-1", Name: "Rice", Stock: -1}},
		{"negative threshold", AddProductCommand{UserID: "user-1", Name: "Rice", LowStockThreshold: -1}},
		{"no session", AddProductCommand{UserID: "user-2", Name: "Rice"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := handler.Handle(tc.cmd); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if len(s.Products()) != 0 {
		t.Fatal("rejected commands created products")
	}
}

func TestUpdateProduct(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(mustProduct("Rice", 150, 50))

	handler := NewUpdateProductHandler(stores)
	updated, err := handler.Handle(UpdateProductCommand{
		UserID:    "user-1",
		ProductID: p.ID,
		Name:      "Premium Rice",
		Price:     180,
		Stock:     45,
	})
	if err != nil {
		t.Fatal(err)
	}

	if updated.Name != "Premium Rice" || updated.Price != 180 || updated.Stock != 45 {
		t.Fatalf("updated = %+v", updated)
	}
	if !updated.CreatedAt.Equal(p.CreatedAt) {
		t.Fatal("created at drifted")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	stores, _ := activeStore(t, "user-1")
	handler := NewUpdateProductHandler(stores)

	if _, err := handler.Handle(UpdateProductCommand{UserID: "user-1", ProductID: "missing", Name: "Rice"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestDeleteProduct(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(mustProduct("Rice", 150, 50))

	handler := NewDeleteProductHandler(stores)
	if err := handler.Handle(DeleteProductCommand{UserID: "user-1", ProductID: p.ID}); err != nil {
		t.Fatal(err)
	}
	if len(s.Products()) != 0 {
		t.Fatal("product not deleted")
	}

	if err := handler.Handle(DeleteProductCommand{UserID: "user-1", ProductID: p.ID}); err == nil {
		t.Fatal("expected error for already deleted product")
	}
}

func TestDecreaseStock(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(mustProduct("Rice", 150, 5))

	handler := NewDecreaseStockHandler(stores)
	if err := handler.Handle(DecreaseStockCommand{UserID: "user-1", ProductID: p.ID, Quantity: 2}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Product(p.ID)
	if got.Stock != 3 {
		t.Fatalf("stock = %d, want 3", got.Stock)
	}

	// Decrementing past zero clamps rather than failing
	if err := handler.Handle(DecreaseStockCommand{UserID: "user-1", ProductID: p.ID, Quantity: 100}); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Product(p.ID)
	if got.Stock != 0 {
		t.Fatalf("stock = %d, want 0", got.Stock)
	}
}

func TestDecreaseStockValidation(t *testing.T) {
	stores, s := activeStore(t, "user-1")
	p := s.AddProduct(mustProduct("Rice", 150, 5))
	handler := NewDecreaseStockHandler(stores)

	if err := handler.Handle(DecreaseStockCommand{UserID: "user-1", ProductID: p.ID, Quantity: 0}); err == nil {
		t.Fatal("expected error for zero quantity")
	}
	if err := handler.Handle(DecreaseStockCommand{UserID: "user-1", ProductID: "missing", Quantity: 1}); err == nil {
		t.Fatal("expected error for unknown product")
	}
}

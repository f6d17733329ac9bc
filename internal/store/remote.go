package store

import (
	"context"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

// Remote mirrors store state to durable storage. Calls resolve
// independently of the in-memory update; callers keep the optimistic
// local change regardless of the remote outcome.
type Remote interface {
	LoadProducts(ctx context.Context, userID string) ([]inventorydomain.Product, error)
	LoadSales(ctx context.Context, userID string) ([]salesdomain.Sale, error)
	CreateProduct(ctx context.Context, product *inventorydomain.Product) error
	UpdateProduct(ctx context.Context, product *inventorydomain.Product) error
	DeleteProduct(ctx context.Context, userID, id string) error
	// RecordSale persists the sale and its stock decrements atomically
	RecordSale(ctx context.Context, sale *salesdomain.Sale) error
	DecrementStock(ctx context.Context, userID, id string, quantity int) error
}

// loadLimit bounds how many documents a store activation pulls in.
const loadLimit = 10000

// tracedProducts is the optional span-recording surface of the product
// repository. When the configured repository offers it, mirror writes go
// through it so repository spans land on the mutation's trace.
type tracedProducts interface {
	CreateWithContext(ctx context.Context, product *inventorydomain.Product) error
	UpdateWithContext(ctx context.Context, product *inventorydomain.Product) error
	DeleteWithContext(ctx context.Context, userID, id string) error
	FindAllWithContext(ctx context.Context, userID string, limit, offset int) ([]inventorydomain.Product, error)
	DecrementStockWithContext(ctx context.Context, userID, id string, quantity int) error
}

// RepositoryRemote adapts the GORM repositories to the Remote contract
type RepositoryRemote struct {
	products inventorydomain.ProductRepository
	traced   tracedProducts // nil when the repository is not instrumented
	sales    salesdomain.SaleRepository
}

// NewRepositoryRemote creates a Remote backed by the product and sale repositories
func NewRepositoryRemote(products inventorydomain.ProductRepository, sales salesdomain.SaleRepository) *RepositoryRemote {
	traced, _ := products.(tracedProducts)
	return &RepositoryRemote{products: products, traced: traced, sales: sales}
}

func (r *RepositoryRemote) LoadProducts(ctx context.Context, userID string) ([]inventorydomain.Product, error) {
	if r.traced != nil {
		return r.traced.FindAllWithContext(ctx, userID, loadLimit, 0)
	}
	return r.products.FindAll(userID, loadLimit, 0)
}

func (r *RepositoryRemote) LoadSales(ctx context.Context, userID string) ([]salesdomain.Sale, error) {
	return r.sales.FindAll(userID, loadLimit, 0)
}

func (r *RepositoryRemote) CreateProduct(ctx context.Context, product *inventorydomain.Product) error {
	if r.traced != nil {
		return r.traced.CreateWithContext(ctx, product)
	}
	return r.products.Create(product)
}

func (r *RepositoryRemote) UpdateProduct(ctx context.Context, product *inventorydomain.Product) error {
	if r.traced != nil {
		return r.traced.UpdateWithContext(ctx, product)
	}
	return r.products.Update(product)
}

func (r *RepositoryRemote) DeleteProduct(ctx context.Context, userID, id string) error {
	if r.traced != nil {
		return r.traced.DeleteWithContext(ctx, userID, id)
	}
	return r.products.Delete(userID, id)
}

func (r *RepositoryRemote) RecordSale(ctx context.Context, sale *salesdomain.Sale) error {
	return r.sales.RecordSale(sale)
}

func (r *RepositoryRemote) DecrementStock(ctx context.Context, userID, id string, quantity int) error {
	if r.traced != nil {
		return r.traced.DecrementStockWithContext(ctx, userID, id, quantity)
	}
	return r.products.DecrementStock(userID, id, quantity)
}

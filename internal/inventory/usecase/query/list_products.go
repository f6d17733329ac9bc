package query

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// ListProductsQuery represents the query to list the catalog
type ListProductsQuery struct {
	UserID   string
	Category string // Optional: filter by category
}

// ListProductsHandler handles list products query. Reads come from the
// session store, so they always reflect the most recent mutation.
type ListProductsHandler struct {
	stores *store.Manager
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(stores *store.Manager) *ListProductsHandler {
	return &ListProductsHandler{stores: stores}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) ([]domain.Product, error) {
	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	products := s.Products()
	if query.Category == "" {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == query.Category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

package query

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// ListLowStockQuery represents the query for products at or below
// their reorder threshold
type ListLowStockQuery struct {
	UserID string
}

// ListLowStockHandler handles the low stock report
type ListLowStockHandler struct {
	stores *store.Manager
}

// NewListLowStockHandler creates a new list low stock handler
func NewListLowStockHandler(stores *store.Manager) *ListLowStockHandler {
	return &ListLowStockHandler{stores: stores}
}

// Handle executes the list low stock query
func (h *ListLowStockHandler) Handle(query ListLowStockQuery) ([]domain.Product, error) {
	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	var low []domain.Product
	for _, p := range s.Products() {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

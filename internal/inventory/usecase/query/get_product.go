package query

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	UserID    string
	ProductID string
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	stores *store.Manager
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(stores *store.Manager) *GetProductHandler {
	return &GetProductHandler{stores: stores}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	if query.ProductID == "" {
		return nil, fmt.Errorf("invalid product id")
	}

	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	product, found := s.Product(query.ProductID)
	if !found {
		return nil, fmt.Errorf("product not found")
	}
	return &product, nil
}

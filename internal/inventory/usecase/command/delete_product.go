package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/store"
)

// DeleteProductCommand represents the command to remove a catalog product
type DeleteProductCommand struct {
	UserID    string
	ProductID string
}

// DeleteProductHandler handles product removal against the session
// store. Sales referencing the product are left untouched: their
// product references are soft and resolved at display time.
type DeleteProductHandler struct {
	stores *store.Manager
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(stores *store.Manager) *DeleteProductHandler {
	return &DeleteProductHandler{stores: stores}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("invalid product id")
	}

	s, ok := h.stores.Get(cmd.UserID)
	if !ok {
		return fmt.Errorf("no active session")
	}

	if _, found := s.Product(cmd.ProductID); !found {
		return fmt.Errorf("product not found")
	}

	s.DeleteProduct(cmd.ProductID)
	return nil
}

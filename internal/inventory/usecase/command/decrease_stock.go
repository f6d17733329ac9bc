package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/store"
)

// DecreaseStockCommand represents the command to manually lower a product's stock
type DecreaseStockCommand struct {
	UserID    string
	ProductID string
	Quantity  int
}

// DecreaseStockHandler handles the standalone stock decrement
// primitive. The result clamps at zero; decrementing past zero is not
// an error.
type DecreaseStockHandler struct {
	stores *store.Manager
}

// NewDecreaseStockHandler creates a new decrease stock handler
func NewDecreaseStockHandler(stores *store.Manager) *DecreaseStockHandler {
	return &DecreaseStockHandler{stores: stores}
}

// Handle executes the decrease stock command
func (h *DecreaseStockHandler) Handle(cmd DecreaseStockCommand) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("invalid product id")
	}
	if cmd.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	s, ok := h.stores.Get(cmd.UserID)
	if !ok {
		return fmt.Errorf("no active session")
	}

	if _, found := s.Product(cmd.ProductID); !found {
		return fmt.Errorf("product not found")
	}

	s.DecreaseStock(cmd.ProductID, cmd.Quantity)
	return nil
}

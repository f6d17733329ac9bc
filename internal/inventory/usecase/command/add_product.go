package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// AddProductCommand represents the command to add a catalog product
type AddProductCommand struct {
	UserID            string
	Name              string
	Description       string
	Price             float64
	Stock             int
	LowStockThreshold int
	Category          string
	ImageURL          string
	Unit              string
}

// AddProductHandler handles product creation against the session store
type AddProductHandler struct {
	stores *store.Manager
}

// NewAddProductHandler creates a new add product handler
func NewAddProductHandler(stores *store.Manager) *AddProductHandler {
	return &AddProductHandler{stores: stores}
}

// Handle executes the add product command
func (h *AddProductHandler) Handle(cmd AddProductCommand) (*domain.Product, error) {
	// Validation
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.LowStockThreshold < 0 {
		return nil, fmt.Errorf("low stock threshold cannot be negative")
	}

	s, ok := h.stores.Get(cmd.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	product := s.AddProduct(domain.Product{
		Name:              cmd.Name,
		Description:       cmd.Description,
		Price:             cmd.Price,
		Stock:             cmd.Stock,
		LowStockThreshold: cmd.LowStockThreshold,
		Category:          cmd.Category,
		ImageURL:          cmd.ImageURL,
		Unit:              cmd.Unit,
	})
	return &product, nil
}

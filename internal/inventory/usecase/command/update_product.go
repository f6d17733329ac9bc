package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/inventory/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// UpdateProductCommand represents the command to replace a catalog product
type UpdateProductCommand struct {
	UserID            string
	ProductID         string
	Name              string
	Description       string
	Price             float64
	Stock             int
	LowStockThreshold int
	Category          string
	ImageURL          string
	Unit              string
}

// UpdateProductHandler handles product replacement against the session store
type UpdateProductHandler struct {
	stores *store.Manager
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(stores *store.Manager) *UpdateProductHandler {
	return &UpdateProductHandler{stores: stores}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("invalid product id")
	}
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

	if _, found := s.Product(cmd.ProductID); !found {
		return nil, fmt.Errorf("product not found")
	}

	product := domain.Product{
		ID:                cmd.ProductID,
		Name:              cmd.Name,
		Description:       cmd.Description,
		Price:             cmd.Price,
		Stock:             cmd.Stock,
		LowStockThreshold: cmd.LowStockThreshold,
		Category:          cmd.Category,
		ImageURL:          cmd.ImageURL,
		Unit:              cmd.Unit,
	}
	s.UpdateProduct(product)

	updated, _ := s.Product(cmd.ProductID)
	return &updated, nil
}

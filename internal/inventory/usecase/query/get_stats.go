package query

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/store"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct {
	UserID string
}

// CatalogStats represents catalog statistics for the dashboard
type CatalogStats struct {
	TotalProducts   int     `json:"total_products"`
	TotalStock      int64   `json:"total_stock"`
	LowStockCount   int     `json:"low_stock_count"`
	AveragePrice    float64 `json:"average_price"`
	TotalCategories int     `json:"total_categories"`
	InventoryValue  float64 `json:"inventory_value"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	stores *store.Manager
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(stores *store.Manager) *GetStatsHandler {
	return &GetStatsHandler{stores: stores}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*CatalogStats, error) {
	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	products := s.Products()

	var totalStock int64
	var totalPrice, inventoryValue float64
	var lowStock int
	categories := make(map[string]bool)

	for _, p := range products {
		totalStock += int64(p.Stock)
		totalPrice += p.Price
		inventoryValue += p.Price * float64(p.Stock)
		if p.IsLowStock() {
			lowStock++
		}
		if p.Category != "" {
			categories[p.Category] = true
		}
	}

	averagePrice := 0.0
	if len(products) > 0 {
		averagePrice = totalPrice / float64(len(products))
	}

	return &CatalogStats{
		TotalProducts:   len(products),
		TotalStock:      totalStock,
		LowStockCount:   lowStock,
		AveragePrice:    averagePrice,
		TotalCategories: len(categories),
		InventoryValue:  inventoryValue,
	}, nil
}

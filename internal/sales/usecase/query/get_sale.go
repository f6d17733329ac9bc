package query

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/store"
)

// GetSaleQuery represents the query to get a single sale
type GetSaleQuery struct {
	UserID string
	SaleID string
}

// GetSaleHandler handles get sale query
type GetSaleHandler struct {
	stores *store.Manager
}

// NewGetSaleHandler creates a new get sale handler
func NewGetSaleHandler(stores *store.Manager) *GetSaleHandler {
	return &GetSaleHandler{stores: stores}
}

// Handle executes the get sale query
func (h *GetSaleHandler) Handle(query GetSaleQuery) (*SaleView, error) {
	if query.SaleID == "" {
		return nil, fmt.Errorf("invalid sale id")
	}

	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	for _, sale := range s.Sales() {
		if sale.ID != query.SaleID {
			continue
		}
		view := SaleView{ID: sale.ID, Date: sale.Date, Total: sale.Total}
		for _, item := range sale.Items {
			name := UnknownProduct
			if product, found := s.Product(item.ProductID); found {
				name = product.Name
			}
			view.Items = append(view.Items, SaleItemView{
				ProductID:   item.ProductID,
				ProductName: name,
				Quantity:    item.Quantity,
				PriceAtSale: item.PriceAtSale,
			})
		}
		return &view, nil
	}
	return nil, fmt.Errorf("sale not found")
}

package query

import (
	"fmt"
	"time"

	"github.com/shopstock/shopstock/internal/store"
)

// UnknownProduct is the fallback label rendered for sale items whose
// product has since been deleted from the catalog.
const UnknownProduct = "Unknown"

// ListSalesQuery represents the query to list sales history
type ListSalesQuery struct {
	UserID string
	From   time.Time // optional, zero means unbounded
	To     time.Time // optional, zero means unbounded
}

// SaleItemView is a sale line item resolved for display
type SaleItemView struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"priceAtSale"`
}

// SaleView is a sale resolved for display
type SaleView struct {
	ID    string         `json:"id"`
	Date  time.Time      `json:"date"`
	Items []SaleItemView `json:"items"`
	Total float64        `json:"total"`
}

// ListSalesHandler handles sales history queries. Product references
// are soft: items for products deleted since the sale resolve to the
// "Unknown" label rather than failing.
type ListSalesHandler struct {
	stores *store.Manager
}

// NewListSalesHandler creates a new list sales handler
func NewListSalesHandler(stores *store.Manager) *ListSalesHandler {
	return &ListSalesHandler{stores: stores}
}

// Handle executes the list sales query
func (h *ListSalesHandler) Handle(query ListSalesQuery) ([]SaleView, error) {
	s, ok := h.stores.Get(query.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	views := make([]SaleView, 0)
	for _, sale := range s.Sales() {
		if !query.From.IsZero() && sale.Date.Before(query.From) {
			continue
		}
		if !query.To.IsZero() && sale.Date.After(query.To) {
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
		views = append(views, view)
	}
	return views, nil
}

package command

import (
	"fmt"

	"github.com/shopstock/shopstock/internal/sales/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// SaleItemInput is one line of a point-of-sale transaction
type SaleItemInput struct {
	ProductID string
	Quantity  int
}

// RecordSaleCommand represents the command to record a completed sale
type RecordSaleCommand struct {
	UserID string
	Items  []SaleItemInput
}

// RecordSaleHandler handles sale recording. The price at sale is
// snapshotted from the catalog at the moment the sale is submitted, so
// later price edits never change historical totals.
type RecordSaleHandler struct {
	stores *store.Manager
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(stores *store.Manager) *RecordSaleHandler {
	return &RecordSaleHandler{stores: stores}
}

// Handle executes the record sale command
func (h *RecordSaleHandler) Handle(cmd RecordSaleCommand) (*domain.Sale, error) {
	// Validation
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("a sale needs at least one item")
	}

	s, ok := h.stores.Get(cmd.UserID)
	if !ok {
		return nil, fmt.Errorf("no active session")
	}

	items := make([]domain.SaleItem, 0, len(cmd.Items))
	for _, in := range cmd.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive")
		}
		product, found := s.Product(in.ProductID)
		if !found {
			return nil, fmt.Errorf("unknown product: %s", in.ProductID)
		}
		items = append(items, domain.SaleItem{
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			PriceAtSale: product.Price,
		})
	}

	sale := s.AddSale(items)
	return &sale, nil
}

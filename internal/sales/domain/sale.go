package domain

import (
	"time"

	"gorm.io/gorm"
)

// SaleItem is a line item embedded in a sale. ProductID is a soft
// reference: the product may have been deleted since the sale was made.
// PriceAtSale snapshots the price so historical totals stay stable.
type SaleItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	SaleID      string  `json:"-" gorm:"not null;index;type:uuid"`
	ProductID   string  `json:"productId" gorm:"not null;type:uuid"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	PriceAtSale float64 `json:"priceAtSale" gorm:"not null"`
}

// TableName specifies the table name
func (SaleItem) TableName() string {
	return "sale_items"
}

// Sale represents a completed point-of-sale transaction. Sales are
// immutable after creation: there are no update or delete operations.
type Sale struct {
	ID        string         `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string         `json:"user_id" gorm:"not null;index;type:uuid"`
	Date      time.Time      `json:"date" gorm:"not null"`
	Items     []SaleItem     `json:"items" gorm:"foreignKey:SaleID"`
	Total     float64        `json:"total" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Sale) TableName() string {
	return "sales"
}

// ComputeTotal derives the sale total from its items. Total is always
// recomputed, never edited independently.
func ComputeTotal(items []SaleItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.PriceAtSale
	}
	return total
}

// StockDecrement describes the stock adjustment a sale applies to one product
type StockDecrement struct {
	ProductID string
	Quantity  int
}

// Decrements returns the stock adjustments implied by the sale's items
func (s *Sale) Decrements() []StockDecrement {
	decs := make([]StockDecrement, 0, len(s.Items))
	for _, item := range s.Items {
		decs = append(decs, StockDecrement{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return decs
}

// SaleRepository defines the contract for sale data access.
// All reads and writes are scoped to a single owning user.
type SaleRepository interface {
	// RecordSale persists a sale and applies its stock decrements in a
	// single transaction: a decrement can never be recorded without its
	// sale, or vice versa.
	RecordSale(sale *Sale) error
	// Create persists a sale without touching stock. Used for seeding
	// historical demo sales.
	Create(sale *Sale) error
	FindByID(userID, id string) (*Sale, error)
	FindAll(userID string, limit, offset int) ([]Sale, error)
	FindByDateRange(userID string, from, to time.Time) ([]Sale, error)
	Count(userID string) (int64, error)
}

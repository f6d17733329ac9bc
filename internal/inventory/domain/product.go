package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product owned by a single shop
type Product struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	UserID            string         `json:"user_id" gorm:"not null;index;type:uuid"`
	Name              string         `json:"name" gorm:"not null"`
	Description       string         `json:"description"`
	Price             float64        `json:"price" gorm:"not null"`
	Stock             int            `json:"stock" gorm:"not null;default:0"`
	LowStockThreshold int            `json:"lowStockThreshold" gorm:"not null;default:0"`
	Category          string         `json:"category"`
	ImageURL          string         `json:"imageUrl"`
	Unit              string         `json:"unit,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsLowStock checks if the product is at or below its reorder threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// ProductRepository defines the contract for product data access.
// All reads and writes are scoped to a single owning user.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(userID, id string) (*Product, error)
	FindAll(userID string, limit, offset int) ([]Product, error)
	FindByCategory(userID, category string, limit, offset int) ([]Product, error)
	FindLowStock(userID string) ([]Product, error)
	Update(product *Product) error
	Delete(userID, id string) error
	Count(userID string) (int64, error)

	// DecrementStock applies an atomic clamped decrement at the database:
	// stock = GREATEST(stock - quantity, 0). Conditional update, not
	// read-then-write, so concurrent sessions cannot drive stock negative
	// or lose decrements.
	DecrementStock(userID, id string, quantity int) error
}

package kafka

import "time"

// SaleRecordedEvent is emitted after a point-of-sale transaction is
// accepted into a shop's working set.
type SaleRecordedEvent struct {
	EventID   string     `json:"event_id"`
	EventType string     `json:"event_type"`
	UserID    string     `json:"user_id"`
	SaleID    string     `json:"sale_id"`
	Total     float64    `json:"total"`
	Items     []SaleLine `json:"items"`
	Timestamp time.Time  `json:"timestamp"`
}

// SaleLine is one line of a recorded sale
type SaleLine struct {
	ProductID   string  `json:"product_id"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}

// LowStockEvent is emitted when a stock decrement leaves a product at
// or below its reorder threshold.
type LowStockEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	UserID      string    `json:"user_id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int       `json:"stock"`
	Threshold   int       `json:"threshold"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded = "sale.recorded"
	EventTypeLowStock     = "stock.low"
)

// Kafka topics
const (
	TopicSaleRecorded = "sale-recorded"
	TopicLowStock     = "low-stock"
)

package kafka

import (
	"context"

	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
	"github.com/shopstock/shopstock/internal/store"
)

// Bridge forwards store mutations onto the Kafka topics. Registered as
// a store listener; publishes happen on their own goroutine because
// listeners must not block the mutator.
type Bridge struct {
	publisher *Publisher
	stores    *store.Manager
}

// NewBridge creates a bridge publishing through the given publisher
func NewBridge(publisher *Publisher, stores *store.Manager) *Bridge {
	return &Bridge{publisher: publisher, stores: stores}
}

// Listener returns the store listener to register with the manager
func (b *Bridge) Listener() store.Listener {
	return func(ev store.Event) {
		switch ev.Type {
		case store.EventSaleAdded:
			sale := *ev.Sale
			go b.publishSale(ev.UserID, sale)
		case store.EventStockDecreased:
			go b.publishLowStock(ev.UserID, ev.ProductID)
		}
	}
}

func (b *Bridge) publishSale(userID string, sale salesdomain.Sale) {
	event := SaleRecordedEvent{
		UserID: userID,
		SaleID: sale.ID,
		Total:  sale.Total,
	}
	for _, item := range sale.Items {
		event.Items = append(event.Items, SaleLine{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}

	b.publisher.PublishSaleRecorded(context.Background(), event)

	for _, item := range sale.Items {
		b.publishLowStock(userID, item.ProductID)
	}
}

func (b *Bridge) publishLowStock(userID, productID string) {
	s, ok := b.stores.Get(userID)
	if !ok {
		return
	}
	product, ok := s.Product(productID)
	if !ok || !product.IsLowStock() {
		return
	}

	b.publisher.PublishLowStock(context.Background(), LowStockEvent{
		UserID:      userID,
		ProductID:   product.ID,
		ProductName: product.Name,
		Stock:       product.Stock,
		Threshold:   product.LowStockThreshold,
	})
}

// Package seed populates a brand-new shop with a default catalog and a
// small randomized demo sales history, exactly once per user.
package seed

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
)

type productSpec struct {
	name        string
	description string
	price       float64
	stock       int
	threshold   int
	category    string
	image       string
}

var defaultCatalog = []productSpec{
	{"Basmati Rice", "Premium quality long-grain Basmati rice.", 150, 50, 10, "Grains", "https://picsum.photos/seed/rice1/400/300"},
	{"Toor Dal", "Split pigeon peas, a staple in Indian cooking.", 120, 45, 15, "Lentils", "https://picsum.photos/seed/lentils1/400/300"},
	{"Atta Flour", "Whole wheat flour for making rotis and chapatis.", 50, 80, 20, "Flour", "https://picsum.photos/seed/flour1/400/300"},
	{"Sunflower Oil", "Refined sunflower oil for daily cooking.", 180, 30, 10, "Oils", "https://picsum.photos/seed/oil1/400/300"},
	{"Turmeric Powder", "Pure Haldi powder with high curcumin content.", 40, 100, 30, "Spices", "https://picsum.photos/seed/spices1/400/300"},
	{"Cumin Seeds", "Whole Jeera seeds for tempering and flavor.", 60, 70, 25, "Spices", "https://picsum.photos/seed/spices2/400/300"},
	{"White Sugar", "Refined crystal sugar.", 45, 120, 40, "Sweeteners", "https://picsum.photos/seed/sugar1/400/300"},
	{"Tata Tea Gold", "A blend of fine tea leaves for a rich taste.", 250, 40, 10, "Beverages", "https://picsum.photos/seed/tea1/400/300"},
	{"Amul Ghee", "Pure cow ghee with a rich aroma.", 550, 25, 5, "Dairy", "https://picsum.photos/seed/ghee1/400/300"},
	{"Onions", "Fresh red onions, 1kg.", 30, 90, 20, "Vegetables", "https://picsum.photos/seed/onions1/400/300"},
	{"Potatoes", "Fresh farm potatoes, 1kg.", 25, 150, 30, "Vegetables", "https://picsum.photos/seed/potatoes1/400/300"},
	{"Tomatoes", "Fresh ripe tomatoes, 1kg.", 40, 60, 15, "Vegetables", "https://picsum.photos/seed/tomatoes1/400/300"},
}

// DefaultProducts builds the default grocery catalog for a new shop
func DefaultProducts(userID string) []inventorydomain.Product {
	now := time.Now()
	products := make([]inventorydomain.Product, 0, len(defaultCatalog))
	for _, spec := range defaultCatalog {
		products = append(products, inventorydomain.Product{
			ID:                uuid.NewString(),
			UserID:            userID,
			Name:              spec.name,
			Description:       spec.description,
			Price:             spec.price,
			Stock:             spec.stock,
			LowStockThreshold: spec.threshold,
			Category:          spec.category,
			ImageURL:          spec.image,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}
	return products
}

// DemoSales generates a randomized sales history over the preceding
// seven days: 0-2 sales per day, each with 1-3 line items referencing
// distinct seeded products, quantities 1-2, priced at the product's
// current price.
func DemoSales(userID string, products []inventorydomain.Product, rng *rand.Rand) []salesdomain.Sale {
	if len(products) == 0 {
		return nil
	}

	var sales []salesdomain.Sale
	now := time.Now()
	for day := 1; day <= 7; day++ {
		for n := rng.Intn(3); n > 0; n-- {
			date := now.AddDate(0, 0, -day).Add(time.Duration(rng.Intn(12)) * time.Hour)
			sale := salesdomain.Sale{
				ID:        uuid.NewString(),
				UserID:    userID,
				Date:      date,
				CreatedAt: date,
			}

			itemCount := 1 + rng.Intn(3)
			if itemCount > len(products) {
				itemCount = len(products)
			}
			for _, idx := range rng.Perm(len(products))[:itemCount] {
				p := products[idx]
				sale.Items = append(sale.Items, salesdomain.SaleItem{
					SaleID:      sale.ID,
					ProductID:   p.ID,
					Quantity:    1 + rng.Intn(2),
					PriceAtSale: p.Price,
				})
			}
			sale.Total = salesdomain.ComputeTotal(sale.Items)
			sales = append(sales, sale)
		}
	}
	return sales
}

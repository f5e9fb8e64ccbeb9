package domain

import "time"

// Product represents a row of the products master dataset.
// Corresponds to the dim_products table in the warehouse.
type Product struct {
	ProductID     string // PRIMARY KEY, e.g. PROD000042
	Name          string
	Category      string
	Brand         string
	Price         float64 // catalog unit price
	Cost          float64 // unit cost
	StockQuantity int
	CreatedDate   time.Time
}

// Product categories used by the generator.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHomeGarden  = "Home & Garden"
	CategorySports      = "Sports & Fitness"
)

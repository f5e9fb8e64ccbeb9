// Package generator produces the synthetic e-commerce datasets fed into
// the staging zone: a product catalog, a customer base, and daily order
// line items with realistic category, payment and status mixes.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"ecommerce-pipeline/internal/domain"
)

// Config controls dataset shape. Zero values fall back to defaults.
type Config struct {
	// Days of order history to generate, counting back from Now.
	Days int

	// ProductCount is the catalog size.
	ProductCount int

	// CustomerCount is the customer base size.
	CustomerCount int

	// Seed makes generation reproducible.
	Seed int64

	// Now anchors all generated dates. Defaults to time.Now.
	Now func() time.Time
}

// Defaults matching the reference dataset shape.
const (
	DefaultDays          = 30
	DefaultProductCount  = 1000
	DefaultCustomerCount = 5000
	DefaultSeed          = 42

	// Mean order volume per day. Weekends get a 1.3x uplift.
	meanDailyOrders   = 400
	weekendMultiplier = 1.3
)

var (
	categories = []string{
		domain.CategoryElectronics,
		domain.CategoryClothing,
		domain.CategoryBooks,
		domain.CategoryHomeGarden,
		domain.CategorySports,
	}
	brands    = []string{"TechCorp", "StyleMax", "BookWorld", "HomeLife", "FitZone", "Generic"}
	cities    = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Hyderabad", "Pune", "Ahmedabad"}
	ageGroups = []string{"18-25", "26-35", "36-45", "46-55", "55+"}
)

// Generator produces deterministic synthetic datasets.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// New creates a Generator. The same Config yields the same datasets.
func New(cfg Config) *Generator {
	if cfg.Days <= 0 {
		cfg.Days = DefaultDays
	}
	if cfg.ProductCount <= 0 {
		cfg.ProductCount = DefaultProductCount
	}
	if cfg.CustomerCount <= 0 {
		cfg.CustomerCount = DefaultCustomerCount
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate produces the three raw datasets. Order dates span the last
// cfg.Days days ending the day before Now, truncated to UTC midnight.
func (g *Generator) Generate() ([]*domain.Product, []*domain.Customer, []*domain.Order) {
	now := g.cfg.Now().UTC()
	products := g.generateProducts(now)
	customers := g.generateCustomers(now)
	orders := g.generateOrders(now, products, customers)
	return products, customers, orders
}

func (g *Generator) generateProducts(now time.Time) []*domain.Product {
	products := make([]*domain.Product, 0, g.cfg.ProductCount)
	for i := 0; i < g.cfg.ProductCount; i++ {
		category := categories[g.rng.Intn(len(categories))]
		basePrice := 10 + g.rng.Float64()*490
		products = append(products, &domain.Product{
			ProductID:     fmt.Sprintf("PROD%06d", i),
			Name:          fmt.Sprintf("%s %s Item %d", brands[g.rng.Intn(len(brands))], category, i%100),
			Category:      category,
			Brand:         brands[g.rng.Intn(len(brands))],
			Price:         round2(basePrice),
			Cost:          round2(basePrice * (0.3 + g.rng.Float64()*0.4)),
			StockQuantity: g.rng.Intn(1000),
			CreatedDate:   midnight(now.AddDate(0, 0, -(30 + g.rng.Intn(335)))),
		})
	}
	return products
}

func (g *Generator) generateCustomers(now time.Time) []*domain.Customer {
	customers := make([]*domain.Customer, 0, g.cfg.CustomerCount)
	for i := 0; i < g.cfg.CustomerCount; i++ {
		customers = append(customers, &domain.Customer{
			CustomerID: fmt.Sprintf("CUST%06d", i),
			Name:       fmt.Sprintf("Customer %d", i),
			Email:      fmt.Sprintf("customer%d@email.com", i),
			City:       cities[g.rng.Intn(len(cities))],
			AgeGroup:   ageGroups[g.rng.Intn(len(ageGroups))],
			SignupDate: midnight(now.AddDate(0, 0, -(1 + g.rng.Intn(364)))),
			Segment: g.weightedChoice(
				[]string{domain.SegmentPremium, domain.SegmentRegular, domain.SegmentBudget},
				[]float64{0.2, 0.6, 0.2},
			),
		})
	}
	return customers
}

func (g *Generator) generateOrders(now time.Time, products []*domain.Product, customers []*domain.Customer) []*domain.Order {
	var orders []*domain.Order
	baseDate := midnight(now.AddDate(0, 0, -g.cfg.Days))

	orderSeq := 0
	for day := 0; day < g.cfg.Days; day++ {
		currentDate := baseDate.AddDate(0, 0, day)

		dailyOrders := g.poisson(meanDailyOrders)
		if wd := currentDate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			dailyOrders = int(float64(dailyOrders) * weekendMultiplier)
		}

		for n := 0; n < dailyOrders; n++ {
			customer := customers[g.rng.Intn(len(customers))]
			itemsInOrder := g.weightedChoiceInt([]int{1, 2, 3, 4}, []float64{0.6, 0.25, 0.1, 0.05})

			orderID := fmt.Sprintf("ORD%08d", orderSeq)
			orderSeq++

			for item := 0; item < itemsInOrder; item++ {
				product := products[g.rng.Intn(len(products))]
				quantity := g.weightedChoiceInt([]int{1, 2, 3}, []float64{0.8, 0.15, 0.05})
				itemTotal := round2(product.Price * float64(quantity))

				orders = append(orders, &domain.Order{
					OrderID:    orderID,
					CustomerID: customer.CustomerID,
					ProductID:  product.ProductID,
					OrderDate:  currentDate,
					Quantity:   quantity,
					UnitPrice:  product.Price,
					ItemTotal:  itemTotal,
					Status: g.weightedChoice(
						[]string{domain.StatusCompleted, domain.StatusPending, domain.StatusCancelled},
						[]float64{0.85, 0.1, 0.05},
					),
					PaymentMethod: g.weightedChoice(
						[]string{"Credit Card", "Debit Card", "UPI", "COD"},
						[]float64{0.4, 0.3, 0.25, 0.05},
					),
					DiscountAmount: round2(g.rng.Float64() * itemTotal * 0.2),
				})
			}
		}
	}

	return orders
}

// poisson samples from Poisson(mean) via Knuth's method. Fine for the
// means used here; not suitable for very large means.
func (g *Generator) poisson(mean float64) int {
	limit := math.Exp(-mean)
	if limit == 0 {
		// Normal approximation for large means.
		return int(math.Max(0, math.Round(g.rng.NormFloat64()*math.Sqrt(mean)+mean)))
	}
	k := 0
	p := 1.0
	for p > limit {
		k++
		p *= g.rng.Float64()
	}
	return k - 1
}

func (g *Generator) weightedChoice(values []string, weights []float64) string {
	return values[g.weightedIndex(weights)]
}

func (g *Generator) weightedChoiceInt(values []int, weights []float64) int {
	return values[g.weightedIndex(weights)]
}

func (g *Generator) weightedIndex(weights []float64) int {
	r := g.rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(weights) - 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

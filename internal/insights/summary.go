// Package insights implements the insights generation pipeline: it
// aggregates inventory records, renders a prompt, calls a completion
// service, and extracts a validated three-field result from the reply.
package insights

import (
	"sort"

	"stocklens/internal/product"
)

// lowStockThreshold is the exclusive upper bound for low stock.
// Policy: 0 < quantity < lowStockThreshold; quantity 0 counts as
// out of stock, never low stock.
const lowStockThreshold = 10

// CategoryShare is one category's record count and share of the total,
// as a percentage.
type CategoryShare struct {
	Category string
	Count    int
	Percent  float64
}

// Summary is the ephemeral aggregation over one owner's records.
// It is recomputed on every pipeline invocation and never persisted.
type Summary struct {
	TotalItems int
	TotalValue product.Cents
	// Categories holds distinct labels in encounter order.
	Categories []string
	// Shares is sorted by count descending; ties keep encounter order.
	Shares     []CategoryShare
	LowStock   []product.Product
	OutOfStock []product.Product
}

// IsEmpty reports the no-data marker used for the placeholder path.
func (s Summary) IsEmpty() bool { return s.TotalItems == 0 }

// Aggregate computes a Summary from a point-in-time snapshot of records.
// Pure function: it never mutates its input and the same snapshot always
// yields the same summary.
func Aggregate(records []product.Product) Summary {
	s := Summary{TotalItems: len(records)}
	if len(records) == 0 {
		return s
	}

	counts := make(map[string]int, 8)
	for _, r := range records {
		s.TotalValue += r.Price.Mul(r.Quantity)
		if _, seen := counts[r.Category]; !seen {
			s.Categories = append(s.Categories, r.Category)
		}
		counts[r.Category]++
		switch {
		case r.Quantity == 0:
			s.OutOfStock = append(s.OutOfStock, r)
		case r.Quantity < lowStockThreshold:
			s.LowStock = append(s.LowStock, r)
		}
	}

	s.Shares = make([]CategoryShare, 0, len(s.Categories))
	for _, c := range s.Categories {
		n := counts[c]
		s.Shares = append(s.Shares, CategoryShare{
			Category: c,
			Count:    n,
			Percent:  float64(n) * 100 / float64(s.TotalItems),
		})
	}
	sort.SliceStable(s.Shares, func(i, j int) bool {
		return s.Shares[i].Count > s.Shares[j].Count
	})
	return s
}

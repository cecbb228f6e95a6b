// Package product defines the inventory record domain model.
package product

import (
	"fmt"
	"strings"
)

// Product is one stocked item owned by a single user.
type Product struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
	Price    Cents  `json:"price"`
}

// Validate checks the record invariants: non-empty identity and name,
// quantity >= 0, price >= 0.
func (p Product) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity must be >= 0")
	}
	if p.Price < 0 {
		return fmt.Errorf("price must be >= 0")
	}
	return nil
}

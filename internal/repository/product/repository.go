// Package product provides persistence backends for inventory records.
package product

import (
	"context"
	"errors"

	"stocklens/internal/product"
)

// Store defines operations for persisting inventory records.
// Listings are returned in stable creation order.
type Store interface {
	ListByUser(ctx context.Context, userID string) ([]product.Product, error)
	Get(ctx context.Context, userID, id string) (product.Product, error)
	Put(ctx context.Context, p product.Product) error
	Delete(ctx context.Context, userID, id string) error
}

var ErrNotFound = errors.New("product not found")

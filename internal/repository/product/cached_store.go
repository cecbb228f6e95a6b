package product

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"stocklens/internal/product"
)

// CachedStore wraps a Store with an LRU over per-user listings.
// Every write invalidates the owner's cached listing so the insights
// pipeline always aggregates over a fresh snapshot after a mutation.
type CachedStore struct {
	origin Store
	lists  *lru.Cache[string, []product.Product]
}

func NewCached(origin Store, size int) (*CachedStore, error) {
	if size <= 0 {
		size = 1024
	}
	cache, err := lru.New[string, []product.Product](size)
	if err != nil {
		return nil, err
	}
	return &CachedStore{origin: origin, lists: cache}, nil
}

func (s *CachedStore) ListByUser(ctx context.Context, userID string) ([]product.Product, error) {
	if items, ok := s.lists.Get(userID); ok {
		out := make([]product.Product, len(items))
		copy(out, items)
		return out, nil
	}
	items, err := s.origin.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.lists.Add(userID, items)
	out := make([]product.Product, len(items))
	copy(out, items)
	return out, nil
}

func (s *CachedStore) Get(ctx context.Context, userID, id string) (product.Product, error) {
	return s.origin.Get(ctx, userID, id)
}

func (s *CachedStore) Put(ctx context.Context, p product.Product) error {
	if err := s.origin.Put(ctx, p); err != nil {
		return err
	}
	s.lists.Remove(p.UserID)
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, userID, id string) error {
	if err := s.origin.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.lists.Remove(userID)
	return nil
}

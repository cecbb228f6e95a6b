package product

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"stocklens/internal/product"
)

// MemoryStore keeps records in memory, preserving per-user creation order.
// Used when no Postgres DSN is configured and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]product.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]product.Product),
	}
}

func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]product.Product, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := s.byUser[userID]
	out := make([]product.Product, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, userID, id string) (product.Product, error) {
	if s == nil {
		return product.Product{}, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.byUser[strings.TrimSpace(userID)] {
		if p.ID == id {
			return p, nil
		}
	}
	return product.Product{}, ErrNotFound
}

func (s *MemoryStore) Put(_ context.Context, p product.Product) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byUser[p.UserID]
	for i := range items {
		if items[i].ID == p.ID {
			items[i] = p
			return nil
		}
	}
	s.byUser[p.UserID] = append(items, p)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id string) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	userID = strings.TrimSpace(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.byUser[userID]
	for i := range items {
		if items[i].ID == id {
			s.byUser[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

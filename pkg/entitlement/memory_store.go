package entitlement

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]Subscription
}

// NewMemoryStore returns an empty in-memory subscription store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[string]Subscription),
	}
}

// Find retrieves the subscription for a wallet address.
// Copies on the way out so callers cannot mutate internal state.
func (s *MemoryStore) Find(ctx context.Context, walletAddress string) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[walletAddress]
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return &row, nil
}

// Upsert creates or replaces the subscription row for the wallet.
func (s *MemoryStore) Upsert(ctx context.Context, subscription *Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[subscription.WalletAddress] = *subscription
	return nil
}

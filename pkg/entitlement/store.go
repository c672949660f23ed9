package entitlement

import "context"

// Store defines the interface for subscription persistence.
// Each wallet has at most one subscription, so WalletAddress serves as
// the primary key. The engine accepts last-writer-wins semantics at the
// storage layer; no locking discipline is applied.
type Store interface {
	// Find retrieves the subscription for a wallet address.
	// Returns ErrSubscriptionNotFound if no row exists.
	Find(ctx context.Context, walletAddress string) (*Subscription, error)

	// Upsert creates or fully replaces the subscription row for
	// subscription.WalletAddress.
	Upsert(ctx context.Context, subscription *Subscription) error
}

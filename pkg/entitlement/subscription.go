package entitlement

import "time"

// Subscription represents a wallet's subscription to a plan.
// Each wallet has at most one subscription row; WalletAddress is the
// primary key. Rows are never deleted by this engine, expiry alone
// deactivates them.
type Subscription struct {
	WalletAddress string
	PlanID        string
	ActivatedAt   time.Time
	ExpiresAt     time.Time
}

// IsActiveAt reports whether the subscription is active at a given time.
// Activity is always derived from ExpiresAt, never trusted as a stored
// flag, to avoid drift if time has passed since the row was written.
// This method is useful for testing with fixed time values.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	return s.ExpiresAt.After(now)
}

// IsActive reports whether the subscription is active right now.
func (s *Subscription) IsActive() bool {
	return s.IsActiveAt(time.Now().UTC())
}

// DaysRemainingAt returns the number of days left before expiry at a given time.
// Returns 0 for expired subscriptions.
func (s *Subscription) DaysRemainingAt(now time.Time) int {
	remaining := s.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}

	// Round up partial days for better UX
	days := remaining.Hours() / 24
	return int(days + 0.5)
}

// DaysRemaining returns the number of days left before expiry.
func (s *Subscription) DaysRemaining() int {
	return s.DaysRemainingAt(time.Now().UTC())
}

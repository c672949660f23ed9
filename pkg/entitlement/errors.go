package entitlement

import "errors"

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrUnknownPlan    = errors.New("unknown subscription plan")
	ErrInvalidCatalog = errors.New("invalid plan catalog configuration")
	ErrLimitReached   = errors.New("loyalty program limit reached")
	ErrNoSubscription = errors.New("no active subscription")

	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrResolverUnavailable  = errors.New("subscription storage unavailable")
	ErrRecordWriteFailed    = errors.New("subscription record write failed")

	ErrFailedToCountPrograms = errors.New("failed to count loyalty programs")

	// Storage-layer errors
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

package entitlement

import (
	"context"
	"errors"
	"log/slog"
	"time"

	algotypes "github.com/algorand/go-algorand-sdk/v2/types"
)

// CounterFunc returns the number of loyalty programs currently attributable
// to a wallet. The count is authoritative ledger state, so implementations
// must not cache: it is recomputed before every gating decision that can
// block a mutating action.
type CounterFunc func(ctx context.Context, walletAddress string) (int64, error)

// Service resolves subscriptions and enforces per-plan program limits.
type Service struct {
	catalog *Catalog
	store   Store
	counter CounterFunc
	log     *slog.Logger
	now     func() time.Time
}

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// WithLogger sets the structured logger used by the service.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new entitlement Service.
// Panics if required dependencies are nil to fail fast during initialization.
func NewService(catalog *Catalog, store Store, counter CounterFunc, opts ...ServiceOption) *Service {
	if catalog == nil {
		panic("entitlement: Catalog is required")
	}
	if store == nil {
		panic("entitlement: Store is required")
	}
	if counter == nil {
		panic("entitlement: CounterFunc is required")
	}

	s := &Service{
		catalog: catalog,
		store:   store,
		counter: counter,
		log:     slog.Default(),
		now:     func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Catalog returns the plan catalog the service was built with.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Resolve determines the current subscription for a wallet address.
// Returns (nil, nil) when the wallet has no subscription row, which callers
// treat as the implicit free/no-plan tier. Storage failures are reported as
// ErrResolverUnavailable; callers must treat that as "entitlement unknown"
// and deny new creation rather than silently allow it.
func (s *Service) Resolve(ctx context.Context, walletAddress string) (*Subscription, error) {
	if _, err := algotypes.DecodeAddress(walletAddress); err != nil {
		return nil, errors.Join(ErrInvalidAddress, err)
	}

	sub, err := s.store.Find(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return nil, nil
		}
		return nil, errors.Join(ErrResolverUnavailable, err)
	}

	return sub, nil
}

// Check decides whether a wallet holding the given subscription may create
// one more loyalty program. Pure function over externally fetched state.
func Check(catalog *Catalog, sub *Subscription, currentCount int64, now time.Time) Decision {
	if sub == nil || !sub.IsActiveAt(now) {
		return Decision{Allowed: false, Remaining: 0, Reason: DenyNoActiveSubscription}
	}

	plan, ok := catalog.Get(sub.PlanID)
	if !ok {
		// Data inconsistency between the stored row and the catalog
		return Decision{Allowed: false, Remaining: 0, Reason: DenyUnknownPlan}
	}

	if plan.ProgramLimit == Unlimited {
		return Decision{Allowed: true, Remaining: Unlimited}
	}

	remaining := max(plan.ProgramLimit-currentCount, 0)
	if currentCount < plan.ProgramLimit {
		return Decision{Allowed: true, Remaining: remaining}
	}

	return Decision{Allowed: false, Remaining: remaining, Reason: DenyLimitReached}
}

// CanCreateProgram resolves the wallet's subscription, recounts its programs
// from the ledger, and decides whether one more may be created.
// Fails closed: any resolver or counter failure denies creation and
// surfaces the error so the caller can distinguish "denied" from "unknown".
func (s *Service) CanCreateProgram(ctx context.Context, walletAddress string) (Decision, error) {
	sub, err := s.Resolve(ctx, walletAddress)
	if err != nil {
		return Decision{}, err
	}

	now := s.now()
	if sub == nil || !sub.IsActiveAt(now) {
		return Check(s.catalog, sub, 0, now), nil
	}
	if plan, ok := s.catalog.Get(sub.PlanID); !ok || plan.ProgramLimit == Unlimited {
		return Check(s.catalog, sub, 0, now), nil
	}

	count, err := s.counter(ctx, walletAddress)
	if err != nil {
		s.log.ErrorContext(ctx, "program count failed, denying creation",
			slog.String("wallet", walletAddress), slog.Any("error", err))
		return Decision{}, errors.Join(ErrFailedToCountPrograms, err)
	}

	return Check(s.catalog, sub, count, now), nil
}

// GuardProgramCreation is a convenience wrapper around CanCreateProgram that
// maps denials to sentinel errors, for call sites that only need a yes/no.
func (s *Service) GuardProgramCreation(ctx context.Context, walletAddress string) error {
	decision, err := s.CanCreateProgram(ctx, walletAddress)
	if err != nil {
		return err
	}
	if decision.Allowed {
		return nil
	}

	switch decision.Reason {
	case DenyUnknownPlan:
		return ErrUnknownPlan
	case DenyLimitReached:
		return ErrLimitReached
	default:
		return ErrNoSubscription
	}
}

// ProgramUsage returns the wallet's current program count and plan limit.
// Intended for UI dashboards; limit is Unlimited for uncapped plans.
func (s *Service) ProgramUsage(ctx context.Context, walletAddress string) (used, limit int64, err error) {
	sub, err := s.Resolve(ctx, walletAddress)
	if err != nil {
		return 0, 0, err
	}
	if sub == nil || !sub.IsActiveAt(s.now()) {
		return 0, 0, ErrNoSubscription
	}

	plan, ok := s.catalog.Get(sub.PlanID)
	if !ok {
		return 0, 0, ErrUnknownPlan
	}

	used, err = s.counter(ctx, walletAddress)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountPrograms, err)
	}

	return used, plan.ProgramLimit, nil
}

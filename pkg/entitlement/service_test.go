package entitlement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Emrys-Org/loyalmint/pkg/entitlement"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Find(ctx context.Context, walletAddress string) (*entitlement.Subscription, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entitlement.Subscription), args.Error(1)
}

func (m *mockStore) Upsert(ctx context.Context, sub *entitlement.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func testWallet(t *testing.T) string {
	t.Helper()
	account := crypto.GenerateAccount()
	return account.Address.String()
}

func staticCounter(count int64, err error) entitlement.CounterFunc {
	return func(ctx context.Context, walletAddress string) (int64, error) {
		return count, err
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func activeSub(wallet, planID string) *entitlement.Subscription {
	return &entitlement.Subscription{
		WalletAddress: wallet,
		PlanID:        planID,
		ActivatedAt:   testNow.AddDate(0, 0, -5),
		ExpiresAt:     testNow.AddDate(0, 0, 25),
	}
}

func TestService_Resolve(t *testing.T) {
	t.Parallel()

	catalog := entitlement.DefaultCatalog()

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()

		store := new(mockStore)
		svc := entitlement.NewService(catalog, store, staticCounter(0, nil))

		_, err := svc.Resolve(context.Background(), "not-an-address")
		require.ErrorIs(t, err, entitlement.ErrInvalidAddress)
		store.AssertNotCalled(t, "Find")
	})

	t.Run("no subscription row resolves to nil", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, entitlement.ErrSubscriptionNotFound)

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil))

		sub, err := svc.Resolve(context.Background(), wallet)
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	t.Run("storage outage maps to resolver unavailable", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, errors.New("connection refused"))

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil))

		_, err := svc.Resolve(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrResolverUnavailable)
	})

	t.Run("idempotent without intervening writes", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		want := activeSub(wallet, "basic")
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(want, nil)

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil))

		first, err := svc.Resolve(context.Background(), wallet)
		require.NoError(t, err)
		second, err := svc.Resolve(context.Background(), wallet)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	catalog := entitlement.DefaultCatalog()
	wallet := "wallet"

	tests := []struct {
		name  string
		sub   *entitlement.Subscription
		count int64
		want  entitlement.Decision
	}{
		{
			name:  "nil subscription",
			sub:   nil,
			count: 0,
			want:  entitlement.Decision{Allowed: false, Remaining: 0, Reason: entitlement.DenyNoActiveSubscription},
		},
		{
			name: "expired subscription",
			sub: &entitlement.Subscription{
				WalletAddress: wallet,
				PlanID:        "basic",
				ExpiresAt:     testNow.Add(-time.Minute),
			},
			count: 0,
			want:  entitlement.Decision{Allowed: false, Remaining: 0, Reason: entitlement.DenyNoActiveSubscription},
		},
		{
			name: "unknown plan in stored row",
			sub: &entitlement.Subscription{
				WalletAddress: wallet,
				PlanID:        "legacy",
				ExpiresAt:     testNow.Add(time.Hour),
			},
			count: 0,
			want:  entitlement.Decision{Allowed: false, Remaining: 0, Reason: entitlement.DenyUnknownPlan},
		},
		{
			name:  "under the limit",
			sub:   activeSub(wallet, "basic"),
			count: 3,
			want:  entitlement.Decision{Allowed: true, Remaining: 2},
		},
		{
			name:  "at the limit",
			sub:   activeSub(wallet, "basic"),
			count: 5,
			want:  entitlement.Decision{Allowed: false, Remaining: 0, Reason: entitlement.DenyLimitReached},
		},
		{
			name:  "over the limit clamps remaining",
			sub:   activeSub(wallet, "basic"),
			count: 9,
			want:  entitlement.Decision{Allowed: false, Remaining: 0, Reason: entitlement.DenyLimitReached},
		},
		{
			name:  "unlimited plan",
			sub:   activeSub(wallet, "enterprise"),
			count: 100_000,
			want:  entitlement.Decision{Allowed: true, Remaining: entitlement.Unlimited},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := entitlement.Check(catalog, tt.sub, tt.count, testNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_CanCreateProgram(t *testing.T) {
	t.Parallel()

	catalog := entitlement.DefaultCatalog()

	t.Run("no subscription denies without counting", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, entitlement.ErrSubscriptionNotFound)

		counterCalled := false
		counter := func(ctx context.Context, walletAddress string) (int64, error) {
			counterCalled = true
			return 0, nil
		}

		svc := entitlement.NewService(catalog, store, counter, entitlement.WithClock(fixedClock(testNow)))

		decision, err := svc.CanCreateProgram(context.Background(), wallet)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, entitlement.DenyNoActiveSubscription, decision.Reason)
		assert.False(t, counterCalled)
	})

	t.Run("limit reached", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "basic"), nil)

		svc := entitlement.NewService(catalog, store, staticCounter(5, nil),
			entitlement.WithClock(fixedClock(testNow)))

		decision, err := svc.CanCreateProgram(context.Background(), wallet)
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.EqualValues(t, 0, decision.Remaining)
		assert.Equal(t, entitlement.DenyLimitReached, decision.Reason)
	})

	t.Run("unlimited plan skips counting", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "enterprise"), nil)

		counter := staticCounter(0, errors.New("should not be called"))
		svc := entitlement.NewService(catalog, store, counter,
			entitlement.WithClock(fixedClock(testNow)))

		decision, err := svc.CanCreateProgram(context.Background(), wallet)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, entitlement.Unlimited, decision.Remaining)
	})

	t.Run("counter failure fails closed", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "basic"), nil)

		svc := entitlement.NewService(catalog, store, staticCounter(0, errors.New("node unreachable")),
			entitlement.WithClock(fixedClock(testNow)))

		decision, err := svc.CanCreateProgram(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrFailedToCountPrograms)
		assert.False(t, decision.Allowed)
	})

	t.Run("resolver failure fails closed", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, errors.New("connection refused"))

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil),
			entitlement.WithClock(fixedClock(testNow)))

		decision, err := svc.CanCreateProgram(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrResolverUnavailable)
		assert.False(t, decision.Allowed)
	})
}

func TestService_GuardProgramCreation(t *testing.T) {
	t.Parallel()

	catalog := entitlement.DefaultCatalog()

	t.Run("allowed", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "basic"), nil)

		svc := entitlement.NewService(catalog, store, staticCounter(2, nil),
			entitlement.WithClock(fixedClock(testNow)))

		require.NoError(t, svc.GuardProgramCreation(context.Background(), wallet))
	})

	t.Run("limit reached maps to sentinel", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "basic"), nil)

		svc := entitlement.NewService(catalog, store, staticCounter(5, nil),
			entitlement.WithClock(fixedClock(testNow)))

		err := svc.GuardProgramCreation(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrLimitReached)
	})

	t.Run("no subscription maps to sentinel", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, entitlement.ErrSubscriptionNotFound)

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil),
			entitlement.WithClock(fixedClock(testNow)))

		err := svc.GuardProgramCreation(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrNoSubscription)
	})
}

func TestService_ProgramUsage(t *testing.T) {
	t.Parallel()

	catalog := entitlement.DefaultCatalog()

	t.Run("returns count and limit", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(activeSub(wallet, "pro"), nil)

		svc := entitlement.NewService(catalog, store, staticCounter(7, nil),
			entitlement.WithClock(fixedClock(testNow)))

		used, limit, err := svc.ProgramUsage(context.Background(), wallet)
		require.NoError(t, err)
		assert.EqualValues(t, 7, used)
		assert.EqualValues(t, 20, limit)
	})

	t.Run("no subscription", func(t *testing.T) {
		t.Parallel()

		wallet := testWallet(t)
		store := new(mockStore)
		store.On("Find", mock.Anything, wallet).Return(nil, entitlement.ErrSubscriptionNotFound)

		svc := entitlement.NewService(catalog, store, staticCounter(0, nil),
			entitlement.WithClock(fixedClock(testNow)))

		_, _, err := svc.ProgramUsage(context.Background(), wallet)
		require.ErrorIs(t, err, entitlement.ErrNoSubscription)
	})
}

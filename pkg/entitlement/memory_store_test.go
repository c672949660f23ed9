package entitlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emrys-Org/loyalmint/pkg/entitlement"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("find missing row", func(t *testing.T) {
		t.Parallel()

		store := entitlement.NewMemoryStore()
		_, err := store.Find(context.Background(), "unknown")
		require.ErrorIs(t, err, entitlement.ErrSubscriptionNotFound)
	})

	t.Run("upsert then find", func(t *testing.T) {
		t.Parallel()

		store := entitlement.NewMemoryStore()
		sub := &entitlement.Subscription{
			WalletAddress: "wallet",
			PlanID:        "basic",
			ActivatedAt:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			ExpiresAt:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, store.Upsert(context.Background(), sub))

		got, err := store.Find(context.Background(), "wallet")
		require.NoError(t, err)
		assert.Equal(t, sub, got)
	})

	t.Run("upsert replaces the row", func(t *testing.T) {
		t.Parallel()

		store := entitlement.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Upsert(ctx, &entitlement.Subscription{
			WalletAddress: "wallet",
			PlanID:        "basic",
		}))
		require.NoError(t, store.Upsert(ctx, &entitlement.Subscription{
			WalletAddress: "wallet",
			PlanID:        "pro",
		}))

		got, err := store.Find(ctx, "wallet")
		require.NoError(t, err)
		assert.Equal(t, "pro", got.PlanID)
	})

	t.Run("returned row is a copy", func(t *testing.T) {
		t.Parallel()

		store := entitlement.NewMemoryStore()
		ctx := context.Background()

		require.NoError(t, store.Upsert(ctx, &entitlement.Subscription{
			WalletAddress: "wallet",
			PlanID:        "basic",
		}))

		got, err := store.Find(ctx, "wallet")
		require.NoError(t, err)
		got.PlanID = "tampered"

		fresh, err := store.Find(ctx, "wallet")
		require.NoError(t, err)
		assert.Equal(t, "basic", fresh.PlanID)
	})
}

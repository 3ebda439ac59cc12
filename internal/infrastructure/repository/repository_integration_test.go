package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.PlatformStateModel{},
		&models.SubscriptionModel{},
		&models.MerchantModel{},
		&models.ReviewModel{},
		&models.TokenAccountModel{},
	)
	require.NoError(t, err)

	return db
}

func newTestSubscription(t *testing.T, payer string) *subscription.Subscription {
	s, err := subscription.NewSubscription(
		payer, "merchant-addr", "mint-usdc",
		1_000_000, 86_400, 2_000_000, 100_000_000,
		"Acme", biztime.Now(),
	)
	require.NoError(t, err)
	return s
}

func TestSubscriptionRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	t.Run("create and find by address", func(t *testing.T) {
		s := newTestSubscription(t, "payer-1")
		require.NoError(t, repo.Create(ctx, s))

		found, err := repo.FindByAddress(ctx, s.Address())
		require.NoError(t, err)
		assert.Equal(t, s.Address(), found.Address())
		assert.Equal(t, s.Amount(), found.Amount())
		assert.Equal(t, s.NextPayment().Unix(), found.NextPayment().Unix())
		assert.True(t, found.LastPayment().IsZero())
	})

	t.Run("duplicate address rejected", func(t *testing.T) {
		s := newTestSubscription(t, "payer-dup")
		require.NoError(t, repo.Create(ctx, s))

		again := newTestSubscription(t, "payer-dup")
		err := repo.Create(ctx, again)
		assert.ErrorIs(t, err, subscription.ErrAlreadyExists)
	})

	t.Run("find by payer paginates", func(t *testing.T) {
		s := newTestSubscription(t, "payer-list")
		require.NoError(t, repo.Create(ctx, s))

		subs, total, err := repo.FindByPayer(ctx, "payer-list", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, subs, 1)
		assert.Equal(t, s.Address(), subs[0].Address())
	})

	t.Run("update persists state changes", func(t *testing.T) {
		s := newTestSubscription(t, "payer-update")
		require.NoError(t, repo.Create(ctx, s))

		require.NoError(t, s.Pause(biztime.Now()))
		require.NoError(t, repo.Update(ctx, s))

		found, err := repo.FindByAddress(ctx, s.Address())
		require.NoError(t, err)
		assert.True(t, found.IsPaused())
	})

	t.Run("stale update reports conflict", func(t *testing.T) {
		s := newTestSubscription(t, "payer-stale")
		require.NoError(t, repo.Create(ctx, s))

		fresh, err := repo.FindByAddress(ctx, s.Address())
		require.NoError(t, err)
		require.NoError(t, fresh.Pause(biztime.Now()))
		require.NoError(t, repo.Update(ctx, fresh))

		// The first in-memory copy is now behind the row.
		err = repo.Update(ctx, s)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})

	t.Run("find due returns only active due subscriptions", func(t *testing.T) {
		due := newTestSubscription(t, "payer-due")
		require.NoError(t, repo.Create(ctx, due))

		paused := newTestSubscription(t, "payer-due-paused")
		require.NoError(t, paused.Pause(biztime.Now()))
		require.NoError(t, repo.Create(ctx, paused))

		horizon := biztime.Now().Add(48 * time.Hour).Unix()
		subs, err := repo.FindDue(ctx, horizon, 100)
		require.NoError(t, err)

		addrs := make(map[string]bool, len(subs))
		for _, s := range subs {
			addrs[s.Address()] = true
		}
		assert.True(t, addrs[due.Address()])
		assert.False(t, addrs[paused.Address()])
	})

	t.Run("delete removes the row", func(t *testing.T) {
		s := newTestSubscription(t, "payer-delete")
		require.NoError(t, repo.Create(ctx, s))

		require.NoError(t, repo.Delete(ctx, s.Address()))

		_, err := repo.FindByAddress(ctx, s.Address())
		assert.ErrorIs(t, err, subscription.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, s.Address()), subscription.ErrNotFound)
	})
}

func TestMerchantRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMerchantRepository(db)
	ctx := context.Background()

	newTestMerchant := func(t *testing.T, owner string) *merchant.Merchant {
		m, err := merchant.NewMerchant(owner, "Acme Corp", "https://acme.example/hook", "saas", biztime.Now())
		require.NoError(t, err)
		return m
	}

	t.Run("create and find", func(t *testing.T) {
		m := newTestMerchant(t, "owner-1")
		require.NoError(t, repo.Create(ctx, m))

		byAddr, err := repo.FindByAddress(ctx, m.Address())
		require.NoError(t, err)
		assert.Equal(t, m.Owner(), byAddr.Owner())

		byOwner, err := repo.FindByOwner(ctx, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, m.Address(), byOwner.Address())
	})

	t.Run("one merchant per owner", func(t *testing.T) {
		m := newTestMerchant(t, "owner-dup")
		require.NoError(t, repo.Create(ctx, m))

		err := repo.Create(ctx, newTestMerchant(t, "owner-dup"))
		assert.ErrorIs(t, err, merchant.ErrAlreadyExists)
	})

	t.Run("list filters by tier", func(t *testing.T) {
		m := newTestMerchant(t, "owner-tier")
		require.NoError(t, m.Approve(valueobjects.TierVerified, biztime.Now()))
		require.NoError(t, repo.Create(ctx, m))

		tier := valueobjects.TierVerified
		merchants, total, err := repo.List(ctx, &tier, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, merchants, 1)
		assert.Equal(t, m.Address(), merchants[0].Address())

		unverified := valueobjects.TierUnverified
		_, total, err = repo.List(ctx, &unverified, 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("stale update reports conflict", func(t *testing.T) {
		m := newTestMerchant(t, "owner-stale")
		require.NoError(t, repo.Create(ctx, m))

		fresh, err := repo.FindByAddress(ctx, m.Address())
		require.NoError(t, err)
		require.NoError(t, fresh.Approve(valueobjects.TierVerified, biztime.Now()))
		require.NoError(t, repo.Update(ctx, fresh))

		err = repo.Update(ctx, m)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestReviewRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	eligible := merchant.ReviewEligibility{
		PaymentCount: 5,
		TotalPaid:    10_000_000,
		Age:          30 * 24 * time.Hour,
	}

	t.Run("create and list by merchant", func(t *testing.T) {
		r, err := merchant.NewReview("merchant-r", "reviewer-1", 5, "great service", eligible, biztime.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, r))

		reviews, total, err := repo.ListByMerchant(ctx, "merchant-r", 0, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, reviews, 1)
		assert.Equal(t, uint8(5), reviews[0].Rating())
	})

	t.Run("second review from same reviewer rejected", func(t *testing.T) {
		r1, err := merchant.NewReview("merchant-dup", "reviewer-2", 4, "good", eligible, biztime.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, r1))

		r2, err := merchant.NewReview("merchant-dup", "reviewer-2", 1, "changed my mind", eligible, biztime.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, r2), merchant.ErrReviewAlreadyExists)
	})
}

func TestPlatformRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlatformRepository(db)
	ctx := context.Background()

	t.Run("get before initialization", func(t *testing.T) {
		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, platform.ErrNotFound)
	})

	t.Run("create, get and update", func(t *testing.T) {
		p, err := platform.NewPlatform("authority", "mint-usdc", "fee-acct", 1_000_000_000, 100, biztime.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, p))

		assert.ErrorIs(t, repo.Create(ctx, p), platform.ErrAlreadyInitialized)

		loaded, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, p.Address(), loaded.Address())
		assert.Equal(t, uint16(100), loaded.FeeBasisPoints())

		require.NoError(t, loaded.EmergencyPause(biztime.Now()))
		require.NoError(t, repo.Update(ctx, loaded))

		reloaded, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.True(t, reloaded.IsPaused())
	})
}

package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/repository"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

const reviewMint = "mint-usdc"

type reviewFixture struct {
	*registryFixture
	reviewRepo *repository.ReviewRepository
	subRepo    *repository.SubscriptionRepository
	uc         *SubmitReviewUseCase
}

func newReviewFixture(t *testing.T) *reviewFixture {
	f := newRegistryFixture(t)
	reviewRepo := repository.NewReviewRepository(f.db)
	subRepo := repository.NewSubscriptionRepository(f.db)
	platformRepo := repository.NewPlatformRepository(f.db)

	p, err := platform.NewPlatform("platform-authority", reviewMint, "fee-account", 1_000_000_000, 100, f.start)
	require.NoError(t, err)
	require.NoError(t, platformRepo.Create(context.Background(), p))

	uc := NewSubmitReviewUseCase(f.merchantRepo, reviewRepo, subRepo, platformRepo, f.clock, f.txManager, f.dispatcher, f.log)
	return &reviewFixture{
		registryFixture: f,
		reviewRepo:      reviewRepo,
		subRepo:         subRepo,
		uc:              uc,
	}
}

// seedHistory persists a subscription with the given payment history between
// the reviewer and the fixture merchant.
func (f *reviewFixture) seedHistory(t *testing.T, reviewer string, payments uint32, paid uint64, age time.Duration) {
	created := f.clock.now.Add(-age)
	s := subscription.ReconstructSubscription(
		id.ForSubscription(reviewer, f.merch.Address(), reviewMint),
		reviewer, f.merch.Address(), reviewMint,
		1_000_000, 1_000_000, 86_400,
		f.clock.now.Add(-24*time.Hour), f.clock.now.Add(23*time.Hour),
		paid, payments,
		true, false, false,
		2_000_000, 100_000_000,
		"Acme", 1,
		created, created,
	)
	require.NoError(t, f.subRepo.Create(context.Background(), s))
}

func TestSubmitReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	f.seedHistory(t, "reviewer-1", 5, 5_000_000, 30*24*time.Hour)

	t.Run("eligible reviewer moves the score", func(t *testing.T) {
		result, err := f.uc.Execute(ctx, SubmitReviewCommand{
			MerchantAddress: f.merch.Address(),
			Reviewer:        "reviewer-1",
			Rating:          5,
			Comment:         "<b>great</b> service",
		})
		require.NoError(t, err)
		assert.Equal(t, "great service", result.Comment)

		m, err := f.merchantRepo.FindByAddress(ctx, f.merch.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 20, m.CommunityScore())
	})

	t.Run("one review per reviewer", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, SubmitReviewCommand{
			MerchantAddress: f.merch.Address(),
			Reviewer:        "reviewer-1",
			Rating:          1,
			Comment:         "changed my mind",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, appErrType(t, err))
	})

	t.Run("no subscription means no review", func(t *testing.T) {
		_, err := f.uc.Execute(ctx, SubmitReviewCommand{
			MerchantAddress: f.merch.Address(),
			Reviewer:        "stranger",
			Rating:          5,
			Comment:         "definitely a real customer",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErrType(t, err))
	})
}

func TestSubmitReviewEligibilityGates(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		reviewer string
		payments uint32
		paid     uint64
		age      time.Duration
	}{
		{"too few payments", "gate-payments", 2, 5_000_000, 30 * 24 * time.Hour},
		{"not enough volume", "gate-volume", 5, 999_999, 30 * 24 * time.Hour},
		{"subscription too new", "gate-age", 5, 5_000_000, 6 * 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.seedHistory(t, tc.reviewer, tc.payments, tc.paid, tc.age)

			_, err := f.uc.Execute(ctx, SubmitReviewCommand{
				MerchantAddress: f.merch.Address(),
				Reviewer:        tc.reviewer,
				Rating:          5,
				Comment:         "nice",
			})
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeGuard, appErrType(t, err))
		})
	}
}

func TestSubmitReviewLowRatingPenalizes(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	f.seedHistory(t, "reviewer-low", 5, 5_000_000, 30*24*time.Hour)

	_, err := f.uc.Execute(ctx, SubmitReviewCommand{
		MerchantAddress: f.merch.Address(),
		Reviewer:        "reviewer-low",
		Rating:          1,
		Comment:         "never delivered",
	})
	require.NoError(t, err)

	m, err := f.merchantRepo.FindByAddress(ctx, f.merch.Address())
	require.NoError(t, err)
	assert.EqualValues(t, -30, m.CommunityScore())
}

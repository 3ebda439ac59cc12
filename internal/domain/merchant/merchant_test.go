package merchant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
)

func newTestMerchant(t *testing.T, now time.Time) *Merchant {
	t.Helper()
	m, err := NewMerchant("owner-1", "Acme Corp", "https://acme.example/webhook", "saas", now)
	require.NoError(t, err)
	return m
}

func TestNewMerchant(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("starts unverified with zero score", func(t *testing.T) {
		m := newTestMerchant(t, now)
		assert.Equal(t, valueobjects.TierUnverified, m.Tier())
		assert.Equal(t, int32(0), m.CommunityScore())
		assert.False(t, m.PremiumBadgeActive())
	})

	t.Run("rejects oversized business name", func(t *testing.T) {
		_, err := NewMerchant("o", strings.Repeat("x", 65), "https://x", "saas", now)
		assert.ErrorIs(t, err, ErrInvalidBusinessName)
	})

	t.Run("address is stable per owner", func(t *testing.T) {
		a := newTestMerchant(t, now)
		b := newTestMerchant(t, now.Add(time.Hour))
		assert.Equal(t, a.Address(), b.Address())
	})
}

func TestMerchant_Approve(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("admin can assign verified", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		assert.Equal(t, valueobjects.TierVerified, m.Tier())
	})

	t.Run("community tier cannot be assigned", func(t *testing.T) {
		m := newTestMerchant(t, now)
		err := m.Approve(valueobjects.TierCommunity, now)
		assert.ErrorIs(t, err, ErrCommunityTierNotAssignable)
	})
}

func TestMerchant_RecordTransaction(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success adds stats and ten points", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.RecordTransaction(1_000_000, true, now))
		assert.Equal(t, uint64(1), m.TotalTransactions())
		assert.Equal(t, uint64(1_000_000), m.TotalVolume())
		assert.Equal(t, int32(10), m.CommunityScore())
	})

	t.Run("failure subtracts twenty-five points", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.RecordTransaction(1_000_000, false, now))
		assert.Equal(t, uint32(1), m.FailedTransactions())
		assert.Equal(t, int32(-25), m.CommunityScore())
		assert.Equal(t, uint64(0), m.TotalVolume())
	})

	t.Run("auto-upgrade to community on excellent metrics", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		for i := 0; i < 100; i++ {
			require.NoError(t, m.RecordTransaction(1_000, true, now))
		}
		// 100 txns at +10 each = score 1000, zero failures.
		assert.Equal(t, valueobjects.TierCommunity, m.Tier())
	})

	t.Run("no upgrade with five failures", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		// Pick up failures early, keeping the score above the suspension
		// threshold, then build volume past every other upgrade bar.
		for i := 0; i < 3; i++ {
			require.NoError(t, m.RecordTransaction(1_000, true, now))
		}
		for i := 0; i < 5; i++ {
			require.NoError(t, m.RecordTransaction(0, false, now))
		}
		for i := 0; i < 117; i++ {
			require.NoError(t, m.RecordTransaction(1_000, true, now))
		}
		assert.Equal(t, uint64(120), m.TotalTransactions())
		assert.GreaterOrEqual(t, m.CommunityScore(), int32(1000))
		assert.Equal(t, valueobjects.TierVerified, m.Tier())
	})

	t.Run("auto-suspend below minus one hundred", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		require.NoError(t, m.ActivatePremiumBadge(now))
		for i := 0; i < 5; i++ {
			require.NoError(t, m.RecordTransaction(0, false, now))
		}
		// Score is -125, below the -100 threshold.
		assert.Equal(t, valueobjects.TierSuspended, m.Tier())
		assert.False(t, m.PremiumBadgeActive())
	})

	t.Run("expired premium badge deactivates on next transaction", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		require.NoError(t, m.ActivatePremiumBadge(now))

		after := m.PremiumBadgeExpires().Add(time.Second)
		require.NoError(t, m.RecordTransaction(1_000, true, after))
		assert.False(t, m.PremiumBadgeActive())
	})
}

func TestMerchant_ApplyReviewScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		rating uint8
		want   int32
	}{
		{5, 20},
		{4, 10},
		{3, 0},
		{2, -15},
		{1, -30},
	}
	for _, tt := range tests {
		m := newTestMerchant(t, now)
		require.NoError(t, m.ApplyReviewScore(tt.rating, now))
		assert.Equal(t, tt.want, m.CommunityScore(), "rating %d", tt.rating)
	}

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		m := newTestMerchant(t, now)
		assert.ErrorIs(t, m.ApplyReviewScore(0, now), ErrInvalidRating)
		assert.ErrorIs(t, m.ApplyReviewScore(6, now), ErrInvalidRating)
	})
}

func TestMerchant_PremiumBadge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unverified merchant cannot buy badge", func(t *testing.T) {
		m := newTestMerchant(t, now)
		assert.ErrorIs(t, m.ActivatePremiumBadge(now), ErrNotVerified)
	})

	t.Run("verified merchant gets thirty days", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		require.NoError(t, m.ActivatePremiumBadge(now))
		assert.True(t, m.PremiumBadgeActive())
		assert.Equal(t, now.Add(30*24*time.Hour), m.PremiumBadgeExpires())
	})

	t.Run("suspension forfeits the badge", func(t *testing.T) {
		m := newTestMerchant(t, now)
		require.NoError(t, m.Approve(valueobjects.TierVerified, now))
		require.NoError(t, m.ActivatePremiumBadge(now))
		require.NoError(t, m.Suspend("terms violation", now))
		assert.False(t, m.PremiumBadgeActive())
		assert.Equal(t, valueobjects.TierSuspended, m.Tier())
	})
}

func TestNewReview(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	goodElig := ReviewEligibility{
		PaymentCount: 3,
		TotalPaid:    1_000_000,
		Age:          7 * 24 * time.Hour,
	}

	t.Run("accepts eligible reviewer", func(t *testing.T) {
		r, err := NewReview("mcht_1", "payer-1", 5, "great service", goodElig, now)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), r.Rating())
		assert.NotEmpty(t, r.Address())
	})

	t.Run("one review slot per reviewer and merchant", func(t *testing.T) {
		a, err := NewReview("mcht_1", "payer-1", 5, "great", goodElig, now)
		require.NoError(t, err)
		b, err := NewReview("mcht_1", "payer-1", 1, "terrible", goodElig, now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, a.Address(), b.Address())
	})

	t.Run("rejects too few payments", func(t *testing.T) {
		elig := goodElig
		elig.PaymentCount = 2
		_, err := NewReview("mcht_1", "payer-1", 5, "ok", elig, now)
		assert.ErrorIs(t, err, ErrNotEnoughPayments)
	})

	t.Run("rejects too little volume", func(t *testing.T) {
		elig := goodElig
		elig.TotalPaid = 999_999
		_, err := NewReview("mcht_1", "payer-1", 5, "ok", elig, now)
		assert.ErrorIs(t, err, ErrNotEnoughVolume)
	})

	t.Run("rejects subscription younger than seven days", func(t *testing.T) {
		elig := goodElig
		elig.Age = 7*24*time.Hour - time.Second
		_, err := NewReview("mcht_1", "payer-1", 5, "ok", elig, now)
		assert.ErrorIs(t, err, ErrSubscriptionTooNew)
	})

	t.Run("rejects empty comment and bad rating", func(t *testing.T) {
		_, err := NewReview("mcht_1", "payer-1", 5, "", goodElig, now)
		assert.ErrorIs(t, err, ErrInvalidComment)
		_, err = NewReview("mcht_1", "payer-1", 0, "ok", goodElig, now)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})
}

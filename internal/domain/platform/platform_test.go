package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlatform(t *testing.T, now time.Time) *Platform {
	t.Helper()
	p, err := NewPlatform("admin-1", "usdc", "acct_fee", 10_000_000, 100, now)
	require.NoError(t, err)
	return p
}

func TestNewPlatform(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("applies default fee bounds", func(t *testing.T) {
		p := newTestPlatform(t, now)
		assert.Equal(t, uint64(10_000), p.MinFee())
		assert.Equal(t, uint64(500_000), p.MaxFee())
		assert.False(t, p.IsPaused())
		assert.Equal(t, uint64(0), p.Volume24h())
	})

	t.Run("rejects zero basis points", func(t *testing.T) {
		_, err := NewPlatform("admin", "usdc", "acct_fee", 10, 0, now)
		assert.ErrorIs(t, err, ErrFeeTooLow)
	})

	t.Run("rejects basis points over five percent", func(t *testing.T) {
		_, err := NewPlatform("admin", "usdc", "acct_fee", 10, 501, now)
		assert.ErrorIs(t, err, ErrFeeTooHigh)
	})
}

func TestPlatform_CalculateFee(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := newTestPlatform(t, now) // 100 bps = 1%

	tests := []struct {
		name   string
		amount uint64
		want   uint64
	}{
		{"small amount clamps to min fee", 100_000, 10_000},
		{"one percent within bounds", 10_000_000, 100_000},
		{"large amount clamps to max fee", 1_000_000_000, 500_000},
		{"zero amount still charges min fee", 0, 10_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := p.CalculateFee(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}

	t.Run("no overflow for max uint64 amount", func(t *testing.T) {
		fee, err := p.CalculateFee(^uint64(0))
		require.NoError(t, err)
		assert.Equal(t, p.MaxFee(), fee)
	})
}

func TestPlatform_VolumeGuard(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("accumulates within the limit", func(t *testing.T) {
		p := newTestPlatform(t, now)
		require.NoError(t, p.AddVolume(4_000_000, now))
		require.NoError(t, p.AddVolume(6_000_000, now))
		assert.Equal(t, uint64(10_000_000), p.Volume24h())
	})

	t.Run("rejects volume past the limit", func(t *testing.T) {
		p := newTestPlatform(t, now)
		require.NoError(t, p.AddVolume(10_000_000, now))
		assert.ErrorIs(t, p.AddVolume(1, now), ErrDailyVolumeLimitExceeded)
	})

	t.Run("window rolls after 24h and counter resets", func(t *testing.T) {
		p := newTestPlatform(t, now)
		require.NoError(t, p.AddVolume(10_000_000, now))

		later := now.Add(24 * time.Hour)
		p.RollVolumeWindow(later)
		assert.Equal(t, uint64(0), p.Volume24h())
		assert.Equal(t, later, p.LastVolumeReset())
		assert.NoError(t, p.AddVolume(10_000_000, later))
	})

	t.Run("window does not roll early", func(t *testing.T) {
		p := newTestPlatform(t, now)
		require.NoError(t, p.AddVolume(5_000_000, now))
		p.RollVolumeWindow(now.Add(23 * time.Hour))
		assert.Equal(t, uint64(5_000_000), p.Volume24h())
	})
}

func TestPlatform_EmergencyPause(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("pause blocks payments, unpause resets counters", func(t *testing.T) {
		p := newTestPlatform(t, now)
		require.NoError(t, p.AddVolume(5_000_000, now))
		p.OnPaymentFailed(now)

		require.NoError(t, p.EmergencyPause(now))
		assert.ErrorIs(t, p.EnsureNotPaused(), ErrSystemPaused)

		later := now.Add(time.Hour)
		require.NoError(t, p.EmergencyUnpause(later))
		assert.NoError(t, p.EnsureNotPaused())
		assert.Equal(t, uint64(0), p.Volume24h())
		assert.Equal(t, uint16(0), p.FailedTxCount())
		assert.Equal(t, later, p.LastVolumeReset())
	})

	t.Run("double pause and stray unpause rejected", func(t *testing.T) {
		p := newTestPlatform(t, now)
		assert.ErrorIs(t, p.EmergencyUnpause(now), ErrNotPaused)
		require.NoError(t, p.EmergencyPause(now))
		assert.ErrorIs(t, p.EmergencyPause(now), ErrAlreadyPaused)
	})
}

func TestPlatform_UpdateConfig(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial update keeps other values", func(t *testing.T) {
		p := newTestPlatform(t, now)
		bps := uint16(250)
		require.NoError(t, p.UpdateConfig(&bps, nil, nil, nil, now))
		assert.Equal(t, uint16(250), p.FeeBasisPoints())
		assert.Equal(t, uint64(10_000_000), p.DailyVolumeLimit())
	})

	t.Run("rejects inverted fee bounds", func(t *testing.T) {
		p := newTestPlatform(t, now)
		minFee := uint64(600_000)
		err := p.UpdateConfig(nil, &minFee, nil, nil, now)
		assert.ErrorIs(t, err, ErrInvalidFeeBounds)
	})
}

// Package platform holds the singleton platform state: fee policy, the
// rolling 24h volume guard, and the emergency pause switch.
package platform

import (
	"math/bits"
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

// Platform is the aggregate root for global protocol state. Exactly one row
// exists per deployment.
type Platform struct {
	events.Recorder

	address          string
	authority        string
	settlementMint   string
	feeAccount       string
	dailyVolumeLimit uint64
	volume24h        uint64
	lastVolumeReset  time.Time
	failedTxCount    uint16
	emergencyPause   bool
	feeBasisPoints   uint16
	minFee           uint64
	maxFee           uint64
	totalSubs        uint64
	totalTxns        uint64
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewPlatform initializes the platform state. The fee account is the
// authority's balance account for the settlement mint.
func NewPlatform(authority, settlementMint, feeAccount string, dailyVolumeLimit uint64, feeBasisPoints uint16, now time.Time) (*Platform, error) {
	if authority == "" {
		return nil, ErrAuthorityRequired
	}
	if settlementMint == "" {
		return nil, ErrSettlementMintRequired
	}
	if err := validateFeeBasisPoints(feeBasisPoints); err != nil {
		return nil, err
	}

	p := &Platform{
		address:          id.ForPlatform(),
		authority:        authority,
		settlementMint:   settlementMint,
		feeAccount:       feeAccount,
		dailyVolumeLimit: dailyVolumeLimit,
		lastVolumeReset:  now,
		feeBasisPoints:   feeBasisPoints,
		minFee:           constants.DefaultMinFee,
		maxFee:           constants.DefaultMaxFee,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}
	p.Record(NewPlatformInitializedEvent(p.address, authority, feeBasisPoints, dailyVolumeLimit))
	return p, nil
}

// ReconstructPlatform rebuilds the aggregate from persistence.
func ReconstructPlatform(
	address, authority, settlementMint, feeAccount string,
	dailyVolumeLimit, volume24h uint64,
	lastVolumeReset time.Time,
	failedTxCount uint16,
	emergencyPause bool,
	feeBasisPoints uint16,
	minFee, maxFee uint64,
	totalSubs, totalTxns uint64,
	version int,
	createdAt, updatedAt time.Time,
) *Platform {
	return &Platform{
		address:          address,
		authority:        authority,
		settlementMint:   settlementMint,
		feeAccount:       feeAccount,
		dailyVolumeLimit: dailyVolumeLimit,
		volume24h:        volume24h,
		lastVolumeReset:  lastVolumeReset,
		failedTxCount:    failedTxCount,
		emergencyPause:   emergencyPause,
		feeBasisPoints:   feeBasisPoints,
		minFee:           minFee,
		maxFee:           maxFee,
		totalSubs:        totalSubs,
		totalTxns:        totalTxns,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (p *Platform) Address() string          { return p.address }
func (p *Platform) Authority() string        { return p.authority }
func (p *Platform) SettlementMint() string   { return p.settlementMint }
func (p *Platform) FeeAccount() string       { return p.feeAccount }
func (p *Platform) DailyVolumeLimit() uint64 { return p.dailyVolumeLimit }
func (p *Platform) Volume24h() uint64        { return p.volume24h }
func (p *Platform) LastVolumeReset() time.Time {
	return p.lastVolumeReset
}
func (p *Platform) FailedTxCount() uint16     { return p.failedTxCount }
func (p *Platform) IsPaused() bool            { return p.emergencyPause }
func (p *Platform) FeeBasisPoints() uint16    { return p.feeBasisPoints }
func (p *Platform) MinFee() uint64            { return p.minFee }
func (p *Platform) MaxFee() uint64            { return p.maxFee }
func (p *Platform) TotalSubscriptions() uint64 { return p.totalSubs }
func (p *Platform) TotalTransactions() uint64 { return p.totalTxns }
func (p *Platform) Version() int              { return p.version }
func (p *Platform) CreatedAt() time.Time      { return p.createdAt }
func (p *Platform) UpdatedAt() time.Time      { return p.updatedAt }

// EnsureNotPaused gates every payment-path operation.
func (p *Platform) EnsureNotPaused() error {
	if p.emergencyPause {
		return ErrSystemPaused
	}
	return nil
}

// RollVolumeWindow resets the 24h counter once the window has elapsed.
// Idempotent within a window.
func (p *Platform) RollVolumeWindow(now time.Time) {
	if !now.Before(p.lastVolumeReset.Add(constants.VolumeWindow)) {
		p.volume24h = 0
		p.lastVolumeReset = now
		p.touch(now)
	}
}

// AddVolume checks the rolling limit and applies the amount. Call after
// RollVolumeWindow so a stale window never rejects a valid payment.
func (p *Platform) AddVolume(amount uint64, now time.Time) error {
	newVolume := p.volume24h + amount
	if newVolume < p.volume24h {
		return ErrArithmeticOverflow
	}
	if newVolume > p.dailyVolumeLimit {
		return ErrDailyVolumeLimitExceeded
	}
	p.volume24h = newVolume
	p.touch(now)
	return nil
}

// CalculateFee computes the platform cut for a payment: amount scaled by the
// configured basis points, clamped to the min/max fee bounds. A 128-bit
// intermediate avoids overflow for any uint64 amount.
func (p *Platform) CalculateFee(amount uint64) (uint64, error) {
	if uint64(p.feeBasisPoints) >= constants.BasisPointDivisor {
		return 0, ErrArithmeticOverflow
	}
	hi, lo := bits.Mul64(amount, uint64(p.feeBasisPoints))
	fee, _ := bits.Div64(hi, lo, constants.BasisPointDivisor)
	if fee < p.minFee {
		fee = p.minFee
	}
	if fee > p.maxFee {
		fee = p.maxFee
	}
	return fee, nil
}

// UpdateConfig adjusts fee policy and the volume limit. Nil means keep the
// current value.
func (p *Platform) UpdateConfig(feeBasisPoints *uint16, minFee, maxFee, dailyVolumeLimit *uint64, now time.Time) error {
	newBps := p.feeBasisPoints
	if feeBasisPoints != nil {
		newBps = *feeBasisPoints
	}
	if err := validateFeeBasisPoints(newBps); err != nil {
		return err
	}

	newMin, newMax := p.minFee, p.maxFee
	if minFee != nil {
		newMin = *minFee
	}
	if maxFee != nil {
		newMax = *maxFee
	}
	if newMin > newMax {
		return ErrInvalidFeeBounds
	}

	p.feeBasisPoints = newBps
	p.minFee = newMin
	p.maxFee = newMax
	if dailyVolumeLimit != nil {
		p.dailyVolumeLimit = *dailyVolumeLimit
	}
	p.touch(now)
	p.Record(NewPlatformConfigUpdatedEvent(p.address, p.feeBasisPoints, p.minFee, p.maxFee, p.dailyVolumeLimit))
	return nil
}

// EmergencyPause stops all payment execution immediately.
func (p *Platform) EmergencyPause(now time.Time) error {
	if p.emergencyPause {
		return ErrAlreadyPaused
	}
	p.emergencyPause = true
	p.touch(now)
	p.Record(NewEmergencyPauseActivatedEvent(p.address))
	return nil
}

// EmergencyUnpause resumes operation and resets the volume window and
// failure counters.
func (p *Platform) EmergencyUnpause(now time.Time) error {
	if !p.emergencyPause {
		return ErrNotPaused
	}
	p.emergencyPause = false
	p.volume24h = 0
	p.lastVolumeReset = now
	p.failedTxCount = 0
	p.touch(now)
	p.Record(NewEmergencyPauseLiftedEvent(p.address))
	return nil
}

// OnSubscriptionCreated bumps the subscription counter.
func (p *Platform) OnSubscriptionCreated(now time.Time) error {
	if p.totalSubs+1 < p.totalSubs {
		return ErrArithmeticOverflow
	}
	p.totalSubs++
	p.touch(now)
	return nil
}

// OnSubscriptionCancelled decrements the subscription counter, saturating
// at zero.
func (p *Platform) OnSubscriptionCancelled(now time.Time) {
	if p.totalSubs > 0 {
		p.totalSubs--
	}
	p.touch(now)
}

// OnPaymentExecuted bumps the transaction counter.
func (p *Platform) OnPaymentExecuted(now time.Time) error {
	if p.totalTxns+1 < p.totalTxns {
		return ErrArithmeticOverflow
	}
	p.totalTxns++
	p.touch(now)
	return nil
}

// OnPaymentFailed bumps the failed transaction counter, saturating at the
// uint16 ceiling.
func (p *Platform) OnPaymentFailed(now time.Time) {
	if p.failedTxCount < ^uint16(0) {
		p.failedTxCount++
	}
	p.touch(now)
}

func (p *Platform) touch(now time.Time) {
	p.updatedAt = now
	p.version++
}

func validateFeeBasisPoints(bps uint16) error {
	if bps < constants.MinFeeBasisPoints {
		return ErrFeeTooLow
	}
	if bps > constants.MaxFeeBasisPoints {
		return ErrFeeTooHigh
	}
	return nil
}

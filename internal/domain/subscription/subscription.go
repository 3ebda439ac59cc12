// Package subscription contains the recurring payment agreement between a
// payer and a merchant, including its lifecycle state machine and the
// safety limits the payer sets on it.
package subscription

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

// Subscription is the aggregate root for one payer/merchant/mint agreement.
// Its address doubles as the delegate authority on the payer's token account,
// so the engine can pull payments without holding the payer's keys.
type Subscription struct {
	events.Recorder

	address           string
	payer             string
	merchant          string
	mint              string
	amount            uint64
	originalAmount    uint64
	frequencySeconds  int64
	lastPayment       time.Time
	nextPayment       time.Time
	totalPaid         uint64
	paymentCount      uint32
	active            bool
	paused            bool
	paymentInProgress bool
	maxPerTransaction uint64
	lifetimeCap       uint64
	merchantName      string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewSubscription creates an active subscription with the first payment due
// one full period from now.
func NewSubscription(payer, merchant, mint string, amount uint64, frequencySeconds int64, maxPerTransaction, lifetimeCap uint64, merchantName string, now time.Time) (*Subscription, error) {
	if payer == "" || merchant == "" {
		return nil, ErrPartiesRequired
	}
	if mint == "" {
		return nil, ErrMintRequired
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if frequencySeconds < constants.MinFrequencySeconds || frequencySeconds > constants.MaxFrequencySeconds {
		return nil, ErrInvalidFrequency
	}
	if amount > maxPerTransaction {
		return nil, ErrExceedsTransactionCap
	}
	if lifetimeCap < amount {
		return nil, ErrLifetimeCapTooLow
	}
	if l := len(merchantName); l < 1 || l > constants.MaxMerchantNameLen {
		return nil, ErrInvalidMerchantName
	}

	s := &Subscription{
		address:           id.ForSubscription(payer, merchant, mint),
		payer:             payer,
		merchant:          merchant,
		mint:              mint,
		amount:            amount,
		originalAmount:    amount,
		frequencySeconds:  frequencySeconds,
		nextPayment:       now.Add(time.Duration(frequencySeconds) * time.Second),
		active:            true,
		maxPerTransaction: maxPerTransaction,
		lifetimeCap:       lifetimeCap,
		merchantName:      merchantName,
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}
	s.Record(NewSubscriptionCreatedEvent(s.address, payer, merchant, amount, frequencySeconds))
	return s, nil
}

// ReconstructSubscription rebuilds the aggregate from persistence.
func ReconstructSubscription(
	address, payer, merchant, mint string,
	amount, originalAmount uint64,
	frequencySeconds int64,
	lastPayment, nextPayment time.Time,
	totalPaid uint64,
	paymentCount uint32,
	active, paused, paymentInProgress bool,
	maxPerTransaction, lifetimeCap uint64,
	merchantName string,
	version int,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		address:           address,
		payer:             payer,
		merchant:          merchant,
		mint:              mint,
		amount:            amount,
		originalAmount:    originalAmount,
		frequencySeconds:  frequencySeconds,
		lastPayment:       lastPayment,
		nextPayment:       nextPayment,
		totalPaid:         totalPaid,
		paymentCount:      paymentCount,
		active:            active,
		paused:            paused,
		paymentInProgress: paymentInProgress,
		maxPerTransaction: maxPerTransaction,
		lifetimeCap:       lifetimeCap,
		merchantName:      merchantName,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (s *Subscription) Address() string           { return s.address }
func (s *Subscription) Payer() string             { return s.payer }
func (s *Subscription) Merchant() string          { return s.merchant }
func (s *Subscription) Mint() string              { return s.mint }
func (s *Subscription) Amount() uint64            { return s.amount }
func (s *Subscription) OriginalAmount() uint64    { return s.originalAmount }
func (s *Subscription) FrequencySeconds() int64   { return s.frequencySeconds }
func (s *Subscription) LastPayment() time.Time    { return s.lastPayment }
func (s *Subscription) NextPayment() time.Time    { return s.nextPayment }
func (s *Subscription) TotalPaid() uint64         { return s.totalPaid }
func (s *Subscription) PaymentCount() uint32      { return s.paymentCount }
func (s *Subscription) IsActive() bool            { return s.active }
func (s *Subscription) IsPaused() bool            { return s.paused }
func (s *Subscription) PaymentInProgress() bool   { return s.paymentInProgress }
func (s *Subscription) MaxPerTransaction() uint64 { return s.maxPerTransaction }
func (s *Subscription) LifetimeCap() uint64       { return s.lifetimeCap }
func (s *Subscription) MerchantName() string      { return s.merchantName }
func (s *Subscription) Version() int              { return s.version }
func (s *Subscription) CreatedAt() time.Time      { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time      { return s.updatedAt }

// Age reports how long the subscription has existed.
func (s *Subscription) Age(now time.Time) time.Duration {
	return now.Sub(s.createdAt)
}

// BeginPayment runs every subscription-local check and marks the payment as
// in progress. A second call before SettlePayment or AbortPayment fails with
// ErrPaymentInProgress, which is what stops reentrant execution.
func (s *Subscription) BeginPayment(now time.Time) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if s.paused {
		return ErrSubscriptionPaused
	}
	if s.paymentInProgress {
		return ErrPaymentInProgress
	}
	if now.Before(s.nextPayment) {
		return ErrPaymentNotDue
	}
	if s.amount > s.maxPerTransaction {
		return ErrExceedsTransactionCap
	}

	newTotal := s.totalPaid + s.amount
	if newTotal < s.totalPaid {
		return ErrArithmeticOverflow
	}
	if newTotal > s.lifetimeCap {
		return ErrExceedsLifetimeCap
	}

	// Price variance guard: after the first payment the amount may not
	// drift more than a tenth of the original.
	if s.paymentCount > 0 {
		if variance(s.amount, s.originalAmount) > s.originalAmount/10 {
			return ErrPriceVarianceExceeded
		}
	}

	s.paymentInProgress = true
	s.touch(now)
	return nil
}

// SettlePayment applies the successful payment's effects: schedule the next
// period and accumulate totals. The in-progress flag stays set until
// CompletePayment so any reentrant execution is still rejected while the
// ledger movements run.
func (s *Subscription) SettlePayment(fee uint64, now time.Time) error {
	if !s.paymentInProgress {
		return ErrNoPaymentInProgress
	}
	newTotal := s.totalPaid + s.amount
	if newTotal < s.totalPaid {
		return ErrArithmeticOverflow
	}
	if s.paymentCount+1 < s.paymentCount {
		return ErrArithmeticOverflow
	}

	s.lastPayment = now
	s.nextPayment = now.Add(time.Duration(s.frequencySeconds) * time.Second)
	s.totalPaid = newTotal
	s.paymentCount++
	s.touch(now)
	s.Record(NewPaymentExecutedEvent(s.address, s.amount, fee, s.amount-fee, s.paymentCount))
	return nil
}

// CompletePayment clears the in-progress flag once the ledger movements are
// done.
func (s *Subscription) CompletePayment(now time.Time) error {
	if !s.paymentInProgress {
		return ErrNoPaymentInProgress
	}
	s.paymentInProgress = false
	s.touch(now)
	return nil
}

// AbortPayment clears the in-progress flag after a failed settlement.
func (s *Subscription) AbortPayment(now time.Time) {
	s.paymentInProgress = false
	s.touch(now)
}

// Pause stops payment execution without ending the agreement.
func (s *Subscription) Pause(now time.Time) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if s.paused {
		return ErrAlreadyPaused
	}
	s.paused = true
	s.touch(now)
	s.Record(NewSubscriptionPausedEvent(s.address, s.payer))
	return nil
}

// Resume reactivates a paused subscription. The next payment is scheduled a
// full period out so resuming never triggers an immediate charge.
func (s *Subscription) Resume(now time.Time) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if !s.paused {
		return ErrNotPaused
	}
	s.paused = false
	s.nextPayment = now.Add(time.Duration(s.frequencySeconds) * time.Second)
	s.touch(now)
	s.Record(NewSubscriptionResumedEvent(s.address, s.payer, s.nextPayment))
	return nil
}

// Cancel permanently deactivates the subscription. The caller must also
// revoke the ledger delegation.
func (s *Subscription) Cancel(now time.Time) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	s.active = false
	s.paused = false
	s.touch(now)
	s.Record(NewSubscriptionCancelledEvent(s.address, s.payer, s.totalPaid, s.paymentCount))
	return nil
}

// EnsureClosable verifies the subscription can be deleted.
func (s *Subscription) EnsureClosable() error {
	if s.active {
		return ErrSubscriptionStillActive
	}
	return nil
}

// UpdateLimits changes the payer's safety limits. Nil keeps the current
// value. It reports whether the lifetime cap increased, in which case the
// ledger delegation must be re-approved at the new cap.
func (s *Subscription) UpdateLimits(maxPerTransaction, lifetimeCap *uint64, now time.Time) (capIncreased bool, err error) {
	if !s.active {
		return false, ErrSubscriptionInactive
	}

	if maxPerTransaction != nil {
		if s.amount > *maxPerTransaction {
			return false, ErrExceedsTransactionCap
		}
		s.maxPerTransaction = *maxPerTransaction
	}

	if lifetimeCap != nil {
		if s.totalPaid > *lifetimeCap {
			return false, ErrExceedsLifetimeCap
		}
		capIncreased = *lifetimeCap > s.lifetimeCap
		s.lifetimeCap = *lifetimeCap
	}

	s.touch(now)
	s.Record(NewLimitsUpdatedEvent(s.address, s.maxPerTransaction, s.lifetimeCap))
	return capIncreased, nil
}

// UpdateAmount changes the recurring amount. Once a payment has been made the
// new amount must stay within the variance band, otherwise the next execution
// would be rejected anyway.
func (s *Subscription) UpdateAmount(newAmount uint64, now time.Time) error {
	if !s.active {
		return ErrSubscriptionInactive
	}
	if newAmount == 0 {
		return ErrInvalidAmount
	}
	if newAmount > s.maxPerTransaction {
		return ErrExceedsTransactionCap
	}
	if s.paymentCount > 0 {
		if variance(newAmount, s.originalAmount) > s.originalAmount/10 {
			return ErrPriceVarianceExceeded
		}
	}
	s.amount = newAmount
	s.touch(now)
	s.Record(NewAmountUpdatedEvent(s.address, newAmount))
	return nil
}

func (s *Subscription) touch(now time.Time) {
	s.updatedAt = now
	s.version++
}

func variance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

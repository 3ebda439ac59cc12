// Package merchant implements the merchant registry: verification tiers,
// community reputation scoring, and the premium badge subscription.
package merchant

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

// Score adjustments applied by transaction outcomes and reviews.
const (
	scoreSuccessfulTx = 10
	scoreFailedTx     = 25

	// Auto-upgrade thresholds for Verified -> Community.
	upgradeMinTransactions = 100
	upgradeMinScore        = 1000
	upgradeMaxFailed       = 5

	// Score below which a merchant is suspended automatically.
	autoSuspendScore = -100
)

// Merchant is the aggregate root for a registry entry. One entry exists per
// owner address.
type Merchant struct {
	events.Recorder

	address             string
	owner               string
	businessName        string
	webhookURL          string
	category            string
	tier                valueobjects.VerificationTier
	communityScore      int32
	totalTransactions   uint64
	totalVolume         uint64
	failedTransactions  uint32
	premiumBadgeActive  bool
	premiumBadgeExpires time.Time
	version             int
	createdAt           time.Time
	updatedAt           time.Time
}

// NewMerchant registers a verification application. Every merchant starts
// unverified with a zero score.
func NewMerchant(owner, businessName, webhookURL, category string, now time.Time) (*Merchant, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	if l := len(businessName); l < 1 || l > constants.MaxBusinessNameLen {
		return nil, ErrInvalidBusinessName
	}
	if l := len(webhookURL); l < 1 || l > constants.MaxWebhookURLLen {
		return nil, ErrInvalidWebhookURL
	}
	if l := len(category); l < 1 || l > constants.MaxCategoryLen {
		return nil, ErrInvalidCategory
	}

	m := &Merchant{
		address:      id.ForMerchant(owner),
		owner:        owner,
		businessName: businessName,
		webhookURL:   webhookURL,
		category:     category,
		tier:         valueobjects.TierUnverified,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}
	m.Record(NewApplicationSubmittedEvent(m.address, owner, businessName))
	return m, nil
}

// ReconstructMerchant rebuilds the aggregate from persistence.
func ReconstructMerchant(
	address, owner, businessName, webhookURL, category string,
	tier valueobjects.VerificationTier,
	communityScore int32,
	totalTransactions, totalVolume uint64,
	failedTransactions uint32,
	premiumBadgeActive bool,
	premiumBadgeExpires time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *Merchant {
	return &Merchant{
		address:             address,
		owner:               owner,
		businessName:        businessName,
		webhookURL:          webhookURL,
		category:            category,
		tier:                tier,
		communityScore:      communityScore,
		totalTransactions:   totalTransactions,
		totalVolume:         totalVolume,
		failedTransactions:  failedTransactions,
		premiumBadgeActive:  premiumBadgeActive,
		premiumBadgeExpires: premiumBadgeExpires,
		version:             version,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (m *Merchant) Address() string                      { return m.address }
func (m *Merchant) Owner() string                        { return m.owner }
func (m *Merchant) BusinessName() string                 { return m.businessName }
func (m *Merchant) WebhookURL() string                   { return m.webhookURL }
func (m *Merchant) Category() string                     { return m.category }
func (m *Merchant) Tier() valueobjects.VerificationTier  { return m.tier }
func (m *Merchant) CommunityScore() int32                { return m.communityScore }
func (m *Merchant) TotalTransactions() uint64            { return m.totalTransactions }
func (m *Merchant) TotalVolume() uint64                  { return m.totalVolume }
func (m *Merchant) FailedTransactions() uint32           { return m.failedTransactions }
func (m *Merchant) PremiumBadgeActive() bool             { return m.premiumBadgeActive }
func (m *Merchant) PremiumBadgeExpires() time.Time       { return m.premiumBadgeExpires }
func (m *Merchant) Version() int                         { return m.version }
func (m *Merchant) CreatedAt() time.Time                 { return m.createdAt }
func (m *Merchant) UpdatedAt() time.Time                 { return m.updatedAt }

// Approve assigns a tier after admin review. The community tier can only be
// earned, never assigned.
func (m *Merchant) Approve(tier valueobjects.VerificationTier, now time.Time) error {
	if tier == valueobjects.TierCommunity {
		return ErrCommunityTierNotAssignable
	}
	m.tier = tier
	m.touch(now)
	m.Record(NewMerchantVerifiedEvent(m.address, m.owner, tier))
	return nil
}

// Suspend takes the merchant off the payment path. The premium badge is
// forfeited.
func (m *Merchant) Suspend(reason string, now time.Time) error {
	if l := len(reason); l < 1 || l > constants.MaxSuspendReason {
		return ErrInvalidSuspendReason
	}
	m.tier = valueobjects.TierSuspended
	m.premiumBadgeActive = false
	m.touch(now)
	m.Record(NewMerchantSuspendedEvent(m.address, reason, m.communityScore))
	return nil
}

// UpdateInfo lets the owner change business details. Nil keeps the current
// value.
func (m *Merchant) UpdateInfo(businessName, webhookURL, category *string, now time.Time) error {
	if businessName != nil {
		if l := len(*businessName); l < 1 || l > constants.MaxBusinessNameLen {
			return ErrInvalidBusinessName
		}
		m.businessName = *businessName
	}
	if webhookURL != nil {
		if l := len(*webhookURL); l < 1 || l > constants.MaxWebhookURLLen {
			return ErrInvalidWebhookURL
		}
		m.webhookURL = *webhookURL
	}
	if category != nil {
		if l := len(*category); l < 1 || l > constants.MaxCategoryLen {
			return ErrInvalidCategory
		}
		m.category = *category
	}
	m.touch(now)
	return nil
}

// ActivatePremiumBadge starts a 30-day premium period. Only verified
// merchants can buy visibility.
func (m *Merchant) ActivatePremiumBadge(now time.Time) error {
	if !m.tier.IsVerified() {
		return ErrNotVerified
	}
	m.premiumBadgeActive = true
	m.premiumBadgeExpires = now.Add(constants.PremiumBadgeDuration)
	m.touch(now)
	m.Record(NewPremiumBadgeActivatedEvent(m.address, m.premiumBadgeExpires))
	return nil
}

// expireBadgeIfDue deactivates a lapsed premium badge.
func (m *Merchant) expireBadgeIfDue(now time.Time) {
	if m.premiumBadgeActive && !now.Before(m.premiumBadgeExpires) {
		m.premiumBadgeActive = false
	}
}

// RecordTransaction folds a payment outcome into the merchant's stats and
// reputation, then applies the automatic tier transitions.
func (m *Merchant) RecordTransaction(amount uint64, success bool, now time.Time) error {
	m.expireBadgeIfDue(now)

	if success {
		if m.totalTransactions+1 < m.totalTransactions {
			return ErrArithmeticOverflow
		}
		newVolume := m.totalVolume + amount
		if newVolume < m.totalVolume {
			return ErrArithmeticOverflow
		}
		m.totalTransactions++
		m.totalVolume = newVolume
		m.communityScore = addScore(m.communityScore, scoreSuccessfulTx)
	} else {
		if m.failedTransactions+1 < m.failedTransactions {
			return ErrArithmeticOverflow
		}
		m.failedTransactions++
		m.communityScore = subScore(m.communityScore, scoreFailedTx)
	}

	m.applyAutoTransitions(now)
	m.touch(now)
	return nil
}

// ApplyReviewScore folds a review rating into the reputation score.
func (m *Merchant) ApplyReviewScore(rating uint8, now time.Time) error {
	delta, ok := reviewScoreDelta(rating)
	if !ok {
		return ErrInvalidRating
	}
	if delta >= 0 {
		m.communityScore = addScore(m.communityScore, delta)
	} else {
		m.communityScore = subScore(m.communityScore, -delta)
	}
	m.applyAutoTransitions(now)
	m.touch(now)
	return nil
}

func (m *Merchant) applyAutoTransitions(now time.Time) {
	if m.tier == valueobjects.TierVerified &&
		m.totalTransactions >= upgradeMinTransactions &&
		m.communityScore >= upgradeMinScore &&
		m.failedTransactions < upgradeMaxFailed {
		m.tier = valueobjects.TierCommunity
		m.Record(NewMerchantUpgradedEvent(m.address, valueobjects.TierCommunity))
	}

	if m.communityScore < autoSuspendScore {
		m.tier = valueobjects.TierSuspended
		m.premiumBadgeActive = false
		m.Record(NewMerchantSuspendedEvent(m.address, "community score below threshold", m.communityScore))
	}
}

func (m *Merchant) touch(now time.Time) {
	m.updatedAt = now
	m.version++
}

func reviewScoreDelta(rating uint8) (int32, bool) {
	switch rating {
	case 5:
		return 20, true
	case 4:
		return 10, true
	case 3:
		return 0, true
	case 2:
		return -15, true
	case 1:
		return -30, true
	default:
		return 0, false
	}
}

func addScore(score, delta int32) int32 {
	sum := score + delta
	if sum < score {
		return int32(1<<31 - 1)
	}
	return sum
}

func subScore(score, delta int32) int32 {
	diff := score - delta
	if diff > score {
		return -(1 << 31)
	}
	return diff
}

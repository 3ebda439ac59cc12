package merchant

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
)

const (
	EventApplicationSubmitted  = "merchant.application_submitted"
	EventMerchantVerified      = "merchant.verified"
	EventMerchantUpgraded      = "merchant.upgraded"
	EventMerchantSuspended     = "merchant.suspended"
	EventPremiumBadgeActivated = "merchant.premium_badge_activated"
	EventReviewSubmitted       = "merchant.review_submitted"
)

type ApplicationSubmittedEvent struct {
	events.BaseEvent
	Owner        string
	BusinessName string
}

func NewApplicationSubmittedEvent(address, owner, businessName string) ApplicationSubmittedEvent {
	return ApplicationSubmittedEvent{
		BaseEvent:    events.NewBaseEvent(EventApplicationSubmitted, address),
		Owner:        owner,
		BusinessName: businessName,
	}
}

type MerchantVerifiedEvent struct {
	events.BaseEvent
	Owner string
	Tier  valueobjects.VerificationTier
}

func NewMerchantVerifiedEvent(address, owner string, tier valueobjects.VerificationTier) MerchantVerifiedEvent {
	return MerchantVerifiedEvent{
		BaseEvent: events.NewBaseEvent(EventMerchantVerified, address),
		Owner:     owner,
		Tier:      tier,
	}
}

type MerchantUpgradedEvent struct {
	events.BaseEvent
	NewTier valueobjects.VerificationTier
}

func NewMerchantUpgradedEvent(address string, newTier valueobjects.VerificationTier) MerchantUpgradedEvent {
	return MerchantUpgradedEvent{
		BaseEvent: events.NewBaseEvent(EventMerchantUpgraded, address),
		NewTier:   newTier,
	}
}

type MerchantSuspendedEvent struct {
	events.BaseEvent
	Reason string
	Score  int32
}

func NewMerchantSuspendedEvent(address, reason string, score int32) MerchantSuspendedEvent {
	return MerchantSuspendedEvent{
		BaseEvent: events.NewBaseEvent(EventMerchantSuspended, address),
		Reason:    reason,
		Score:     score,
	}
}

type PremiumBadgeActivatedEvent struct {
	events.BaseEvent
	ExpiresAt time.Time
}

func NewPremiumBadgeActivatedEvent(address string, expiresAt time.Time) PremiumBadgeActivatedEvent {
	return PremiumBadgeActivatedEvent{
		BaseEvent: events.NewBaseEvent(EventPremiumBadgeActivated, address),
		ExpiresAt: expiresAt,
	}
}

type ReviewSubmittedEvent struct {
	events.BaseEvent
	Reviewer string
	Rating   uint8
	NewScore int32
}

func NewReviewSubmittedEvent(merchantAddr, reviewer string, rating uint8, newScore int32) ReviewSubmittedEvent {
	return ReviewSubmittedEvent{
		BaseEvent: events.NewBaseEvent(EventReviewSubmitted, merchantAddr),
		Reviewer:  reviewer,
		Rating:    rating,
		NewScore:  newScore,
	}
}

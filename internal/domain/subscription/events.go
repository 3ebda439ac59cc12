package subscription

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
)

const (
	EventSubscriptionCreated   = "subscription.created"
	EventPaymentExecuted       = "subscription.payment_executed"
	EventSubscriptionPaused    = "subscription.paused"
	EventSubscriptionResumed   = "subscription.resumed"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventLimitsUpdated         = "subscription.limits_updated"
	EventAmountUpdated         = "subscription.amount_updated"
)

type SubscriptionCreatedEvent struct {
	events.BaseEvent
	Payer            string
	Merchant         string
	Amount           uint64
	FrequencySeconds int64
}

func NewSubscriptionCreatedEvent(address, payer, merchant string, amount uint64, frequencySeconds int64) SubscriptionCreatedEvent {
	return SubscriptionCreatedEvent{
		BaseEvent:        events.NewBaseEvent(EventSubscriptionCreated, address),
		Payer:            payer,
		Merchant:         merchant,
		Amount:           amount,
		FrequencySeconds: frequencySeconds,
	}
}

type PaymentExecutedEvent struct {
	events.BaseEvent
	Amount           uint64
	Fee              uint64
	MerchantReceived uint64
	PaymentCount     uint32
}

func NewPaymentExecutedEvent(address string, amount, fee, merchantReceived uint64, paymentCount uint32) PaymentExecutedEvent {
	return PaymentExecutedEvent{
		BaseEvent:        events.NewBaseEvent(EventPaymentExecuted, address),
		Amount:           amount,
		Fee:              fee,
		MerchantReceived: merchantReceived,
		PaymentCount:     paymentCount,
	}
}

type SubscriptionPausedEvent struct {
	events.BaseEvent
	Payer string
}

func NewSubscriptionPausedEvent(address, payer string) SubscriptionPausedEvent {
	return SubscriptionPausedEvent{
		BaseEvent: events.NewBaseEvent(EventSubscriptionPaused, address),
		Payer:     payer,
	}
}

type SubscriptionResumedEvent struct {
	events.BaseEvent
	Payer       string
	NextPayment time.Time
}

func NewSubscriptionResumedEvent(address, payer string, nextPayment time.Time) SubscriptionResumedEvent {
	return SubscriptionResumedEvent{
		BaseEvent:   events.NewBaseEvent(EventSubscriptionResumed, address),
		Payer:       payer,
		NextPayment: nextPayment,
	}
}

type SubscriptionCancelledEvent struct {
	events.BaseEvent
	Payer        string
	TotalPaid    uint64
	PaymentCount uint32
}

func NewSubscriptionCancelledEvent(address, payer string, totalPaid uint64, paymentCount uint32) SubscriptionCancelledEvent {
	return SubscriptionCancelledEvent{
		BaseEvent:    events.NewBaseEvent(EventSubscriptionCancelled, address),
		Payer:        payer,
		TotalPaid:    totalPaid,
		PaymentCount: paymentCount,
	}
}

type LimitsUpdatedEvent struct {
	events.BaseEvent
	MaxPerTransaction uint64
	LifetimeCap       uint64
}

func NewLimitsUpdatedEvent(address string, maxPerTransaction, lifetimeCap uint64) LimitsUpdatedEvent {
	return LimitsUpdatedEvent{
		BaseEvent:         events.NewBaseEvent(EventLimitsUpdated, address),
		MaxPerTransaction: maxPerTransaction,
		LifetimeCap:       lifetimeCap,
	}
}

type AmountUpdatedEvent struct {
	events.BaseEvent
	Amount uint64
}

func NewAmountUpdatedEvent(address string, amount uint64) AmountUpdatedEvent {
	return AmountUpdatedEvent{
		BaseEvent: events.NewBaseEvent(EventAmountUpdated, address),
		Amount:    amount,
	}
}

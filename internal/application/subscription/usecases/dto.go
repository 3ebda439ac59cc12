package usecases

import (
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

// SubscriptionResult is the JSON shape of a subscription across every
// use case in this package.
type SubscriptionResult struct {
	Address           string `json:"address"`
	Payer             string `json:"payer"`
	Merchant          string `json:"merchant"`
	Mint              string `json:"mint"`
	Amount            uint64 `json:"amount"`
	OriginalAmount    uint64 `json:"original_amount"`
	FrequencySeconds  int64  `json:"frequency_seconds"`
	LastPayment       int64  `json:"last_payment"`
	NextPayment       int64  `json:"next_payment"`
	TotalPaid         uint64 `json:"total_paid"`
	PaymentCount      uint32 `json:"payment_count"`
	IsActive          bool   `json:"is_active"`
	IsPaused          bool   `json:"is_paused"`
	MaxPerTransaction uint64 `json:"max_per_transaction"`
	LifetimeCap       uint64 `json:"lifetime_cap"`
	MerchantName      string `json:"merchant_name"`
	CreatedAt         int64  `json:"created_at"`
}

func toSubscriptionResult(s *subscription.Subscription) *SubscriptionResult {
	return &SubscriptionResult{
		Address:           s.Address(),
		Payer:             s.Payer(),
		Merchant:          s.Merchant(),
		Mint:              s.Mint(),
		Amount:            s.Amount(),
		OriginalAmount:    s.OriginalAmount(),
		FrequencySeconds:  s.FrequencySeconds(),
		LastPayment:       biztime.ToUnix(s.LastPayment()),
		NextPayment:       biztime.ToUnix(s.NextPayment()),
		TotalPaid:         s.TotalPaid(),
		PaymentCount:      s.PaymentCount(),
		IsActive:          s.IsActive(),
		IsPaused:          s.IsPaused(),
		MaxPerTransaction: s.MaxPerTransaction(),
		LifetimeCap:       s.LifetimeCap(),
		MerchantName:      s.MerchantName(),
		CreatedAt:         biztime.ToUnix(s.CreatedAt()),
	}
}

// mapSubscriptionError converts domain errors into transport-ready app errors.
func mapSubscriptionError(err error) error {
	switch {
	case errors.Is(err, subscription.ErrNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, subscription.ErrAlreadyExists):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, subscription.ErrInvalidAmount),
		errors.Is(err, subscription.ErrInvalidFrequency),
		errors.Is(err, subscription.ErrInvalidMerchantName),
		errors.Is(err, subscription.ErrLifetimeCapTooLow),
		errors.Is(err, subscription.ErrPartiesRequired),
		errors.Is(err, subscription.ErrMintRequired):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, subscription.ErrSubscriptionInactive),
		errors.Is(err, subscription.ErrSubscriptionPaused),
		errors.Is(err, subscription.ErrSubscriptionStillActive),
		errors.Is(err, subscription.ErrAlreadyPaused),
		errors.Is(err, subscription.ErrNotPaused),
		errors.Is(err, subscription.ErrPaymentInProgress):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, subscription.ErrPaymentNotDue),
		errors.Is(err, subscription.ErrExceedsTransactionCap),
		errors.Is(err, subscription.ErrExceedsLifetimeCap),
		errors.Is(err, subscription.ErrPriceVarianceExceeded):
		return apperrors.NewGuardError(err.Error())
	case errors.Is(err, platform.ErrSystemPaused),
		errors.Is(err, platform.ErrDailyVolumeLimitExceeded):
		return apperrors.NewGuardError(err.Error())
	case errors.Is(err, platform.ErrNotFound):
		return apperrors.NewConflictError("platform is not initialized")
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientDelegation):
		return apperrors.NewGuardError(err.Error())
	default:
		return err
	}
}

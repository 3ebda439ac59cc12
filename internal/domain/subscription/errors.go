package subscription

import "errors"

var (
	ErrPartiesRequired         = errors.New("payer and merchant are required")
	ErrMintRequired            = errors.New("settlement mint is required")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInvalidFrequency        = errors.New("frequency must be between one hour and one year")
	ErrInvalidMerchantName     = errors.New("merchant name must be 1-32 characters")
	ErrLifetimeCapTooLow       = errors.New("lifetime cap is below the payment amount")
	ErrSubscriptionInactive    = errors.New("subscription is inactive")
	ErrSubscriptionPaused      = errors.New("subscription is paused")
	ErrSubscriptionStillActive = errors.New("subscription is still active")
	ErrAlreadyPaused           = errors.New("subscription is already paused")
	ErrNotPaused               = errors.New("subscription is not paused")
	ErrPaymentNotDue           = errors.New("payment is not yet due")
	ErrPaymentInProgress       = errors.New("a payment is already in progress")
	ErrNoPaymentInProgress     = errors.New("no payment in progress")
	ErrExceedsTransactionCap   = errors.New("amount exceeds per-transaction cap")
	ErrExceedsLifetimeCap      = errors.New("amount would exceed lifetime cap")
	ErrPriceVarianceExceeded   = errors.New("amount drifted too far from the original")
	ErrArithmeticOverflow      = errors.New("arithmetic overflow")
	ErrNotFound                = errors.New("subscription not found")
	ErrAlreadyExists           = errors.New("subscription already exists for this payer and merchant")
)

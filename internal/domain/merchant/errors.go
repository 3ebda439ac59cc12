package merchant

import "errors"

var (
	ErrOwnerRequired              = errors.New("merchant owner is required")
	ErrInvalidBusinessName        = errors.New("business name must be 1-64 characters")
	ErrInvalidWebhookURL          = errors.New("webhook url must be 1-128 characters")
	ErrInvalidCategory            = errors.New("category must be 1-32 characters")
	ErrInvalidSuspendReason       = errors.New("suspension reason must be 1-256 characters")
	ErrInvalidRating              = errors.New("rating must be between 1 and 5")
	ErrInvalidComment             = errors.New("comment must be 1-256 characters")
	ErrCommunityTierNotAssignable = errors.New("community tier must be earned, not assigned")
	ErrNotVerified                = errors.New("merchant is not verified")
	ErrSuspended                  = errors.New("merchant is suspended")
	ErrNotEnoughPayments          = errors.New("not enough payments to review this merchant")
	ErrNotEnoughVolume            = errors.New("not enough paid volume to review this merchant")
	ErrSubscriptionTooNew         = errors.New("subscription is too new to review this merchant")
	ErrArithmeticOverflow         = errors.New("arithmetic overflow")
	ErrNotFound                   = errors.New("merchant not found")
	ErrAlreadyExists              = errors.New("merchant already registered for this owner")
	ErrReviewAlreadyExists        = errors.New("review already submitted for this merchant")
	ErrReviewNotFound             = errors.New("review not found")
)

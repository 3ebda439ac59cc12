package usecases

import (
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

// MerchantResult is the JSON shape of a registry entry across every use case
// in this package.
type MerchantResult struct {
	Address             string `json:"address"`
	Owner               string `json:"owner"`
	BusinessName        string `json:"business_name"`
	WebhookURL          string `json:"webhook_url"`
	Category            string `json:"category"`
	Tier                string `json:"tier"`
	CommunityScore      int32  `json:"community_score"`
	TotalTransactions   uint64 `json:"total_transactions"`
	TotalVolume         uint64 `json:"total_volume"`
	FailedTransactions  uint32 `json:"failed_transactions"`
	PremiumBadgeActive  bool   `json:"premium_badge_active"`
	PremiumBadgeExpires int64  `json:"premium_badge_expires"`
	CreatedAt           int64  `json:"created_at"`
}

func toMerchantResult(m *merchant.Merchant) *MerchantResult {
	return &MerchantResult{
		Address:             m.Address(),
		Owner:               m.Owner(),
		BusinessName:        m.BusinessName(),
		WebhookURL:          m.WebhookURL(),
		Category:            m.Category(),
		Tier:                m.Tier().String(),
		CommunityScore:      m.CommunityScore(),
		TotalTransactions:   m.TotalTransactions(),
		TotalVolume:         m.TotalVolume(),
		FailedTransactions:  m.FailedTransactions(),
		PremiumBadgeActive:  m.PremiumBadgeActive(),
		PremiumBadgeExpires: biztime.ToUnix(m.PremiumBadgeExpires()),
		CreatedAt:           biztime.ToUnix(m.CreatedAt()),
	}
}

// ReviewResult is the JSON shape of a review.
type ReviewResult struct {
	Address   string `json:"address"`
	Merchant  string `json:"merchant"`
	Reviewer  string `json:"reviewer"`
	Rating    uint8  `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

func toReviewResult(r *merchant.Review) *ReviewResult {
	return &ReviewResult{
		Address:   r.Address(),
		Merchant:  r.Merchant(),
		Reviewer:  r.Reviewer(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: biztime.ToUnix(r.CreatedAt()),
	}
}

// mapMerchantError converts domain errors into transport-ready app errors.
func mapMerchantError(err error) error {
	switch {
	case errors.Is(err, merchant.ErrNotFound),
		errors.Is(err, merchant.ErrReviewNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, merchant.ErrAlreadyExists),
		errors.Is(err, merchant.ErrReviewAlreadyExists):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, merchant.ErrInvalidBusinessName),
		errors.Is(err, merchant.ErrInvalidWebhookURL),
		errors.Is(err, merchant.ErrInvalidCategory),
		errors.Is(err, merchant.ErrInvalidSuspendReason),
		errors.Is(err, merchant.ErrInvalidRating),
		errors.Is(err, merchant.ErrInvalidComment),
		errors.Is(err, merchant.ErrOwnerRequired),
		errors.Is(err, merchant.ErrCommunityTierNotAssignable):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, merchant.ErrNotVerified),
		errors.Is(err, merchant.ErrSuspended):
		return apperrors.NewForbiddenError(err.Error())
	case errors.Is(err, ledger.ErrMustBeInvokedByCaller),
		errors.Is(err, ledger.ErrUnauthorizedCaller):
		return apperrors.NewForbiddenError(err.Error()).WithCause(err)
	case errors.Is(err, merchant.ErrNotEnoughPayments),
		errors.Is(err, merchant.ErrNotEnoughVolume),
		errors.Is(err, merchant.ErrSubscriptionTooNew):
		return apperrors.NewGuardError(err.Error())
	default:
		return err
	}
}

// mapLedgerError converts settlement errors raised while charging a merchant.
func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrInsufficientDelegation):
		return apperrors.NewGuardError(err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound):
		return apperrors.NewNotFoundError(err.Error())
	default:
		return err
	}
}

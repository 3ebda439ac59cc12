package merchant

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
)

// Review is one reviewer's rating of a merchant. The derived address gives
// each reviewer exactly one review slot per merchant.
type Review struct {
	address   string
	merchant  string
	reviewer  string
	rating    uint8
	comment   string
	createdAt time.Time
}

// ReviewEligibility is the payment history a reviewer must have with the
// merchant before a review is accepted.
type ReviewEligibility struct {
	PaymentCount uint32
	TotalPaid    uint64
	Age          time.Duration
}

// NewReview validates and creates a review. The eligibility gate rejects
// accounts without a real, aged payment relationship with the merchant.
func NewReview(merchantAddr, reviewer string, rating uint8, comment string, elig ReviewEligibility, now time.Time) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	if l := len(comment); l < 1 || l > constants.MaxReviewComment {
		return nil, ErrInvalidComment
	}
	if elig.PaymentCount < constants.MinReviewPayments {
		return nil, ErrNotEnoughPayments
	}
	if elig.TotalPaid < constants.MinReviewTotalPaid {
		return nil, ErrNotEnoughVolume
	}
	if elig.Age < constants.MinReviewSubAge {
		return nil, ErrSubscriptionTooNew
	}

	return &Review{
		address:   id.ForReview(merchantAddr, reviewer),
		merchant:  merchantAddr,
		reviewer:  reviewer,
		rating:    rating,
		comment:   comment,
		createdAt: now,
	}, nil
}

// ReconstructReview rebuilds a review from persistence.
func ReconstructReview(address, merchantAddr, reviewer string, rating uint8, comment string, createdAt time.Time) *Review {
	return &Review{
		address:   address,
		merchant:  merchantAddr,
		reviewer:  reviewer,
		rating:    rating,
		comment:   comment,
		createdAt: createdAt,
	}
}

func (r *Review) Address() string      { return r.address }
func (r *Review) Merchant() string     { return r.merchant }
func (r *Review) Reviewer() string     { return r.reviewer }
func (r *Review) Rating() uint8        { return r.rating }
func (r *Review) Comment() string      { return r.comment }
func (r *Review) CreatedAt() time.Time { return r.createdAt }

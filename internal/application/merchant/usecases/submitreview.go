package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/id"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type SubmitReviewCommand struct {
	MerchantAddress string
	Reviewer        string
	Rating          uint8
	Comment         string
}

// SubmitReviewUseCase records a review and folds its rating into the
// merchant's score. Eligibility is anchored in the reviewer's payment
// history: a subscription with enough payments, enough paid volume, and
// enough age. One review per reviewer and merchant.
type SubmitReviewUseCase struct {
	merchantRepo     merchant.Repository
	reviewRepo       merchant.ReviewRepository
	subscriptionRepo subscription.Repository
	platformRepo     platform.Repository
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	sanitizer        *bluemonday.Policy
	logger           logger.Interface
}

func NewSubmitReviewUseCase(
	merchantRepo merchant.Repository,
	reviewRepo merchant.ReviewRepository,
	subscriptionRepo subscription.Repository,
	platformRepo platform.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		merchantRepo:     merchantRepo,
		reviewRepo:       reviewRepo,
		subscriptionRepo: subscriptionRepo,
		platformRepo:     platformRepo,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		sanitizer:        bluemonday.StrictPolicy(),
		logger:           log,
	}
}

func (uc *SubmitReviewUseCase) Execute(ctx context.Context, cmd SubmitReviewCommand) (*ReviewResult, error) {
	comment := strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Comment))

	var (
		m *merchant.Merchant
		r *merchant.Review
	)

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			return mapMerchantError(err)
		}

		p, err := uc.platformRepo.Get(ctx)
		if err != nil {
			return err
		}

		// The reviewer's standing comes from their subscription with this
		// merchant; no subscription, no review.
		subAddr := id.ForSubscription(cmd.Reviewer, cmd.MerchantAddress, p.SettlementMint())
		sub, err := uc.subscriptionRepo.FindByAddress(ctx, subAddr)
		if err != nil {
			if errors.Is(err, subscription.ErrNotFound) {
				return apperrors.NewForbiddenError("no subscription with this merchant")
			}
			return err
		}

		now := uc.clock.Now()
		r, err = merchant.NewReview(cmd.MerchantAddress, cmd.Reviewer, cmd.Rating, comment, merchant.ReviewEligibility{
			PaymentCount: sub.PaymentCount(),
			TotalPaid:    sub.TotalPaid(),
			Age:          sub.Age(now),
		}, now)
		if err != nil {
			return mapMerchantError(err)
		}

		if err := uc.reviewRepo.Create(ctx, r); err != nil {
			return mapMerchantError(err)
		}

		if err := m.ApplyReviewScore(cmd.Rating, now); err != nil {
			return mapMerchantError(err)
		}
		m.Record(merchant.NewReviewSubmittedEvent(m.Address(), cmd.Reviewer, cmd.Rating, m.CommunityScore()))
		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Infow("review submitted",
		"merchant", m.Address(),
		"reviewer", cmd.Reviewer,
		"rating", cmd.Rating,
		"new_score", m.CommunityScore(),
	)
	return toReviewResult(r), nil
}

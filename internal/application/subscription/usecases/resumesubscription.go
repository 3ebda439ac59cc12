package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type ResumeSubscriptionCommand struct {
	SubscriptionAddress string
	Caller              string
}

// ResumeSubscriptionUseCase reactivates a paused subscription. The next
// payment lands a full period out, never immediately.
type ResumeSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewResumeSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *ResumeSubscriptionUseCase {
	return &ResumeSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *ResumeSubscriptionUseCase) Execute(ctx context.Context, cmd ResumeSubscriptionCommand) (*SubscriptionResult, error) {
	var s *subscription.Subscription

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if s.Payer() != cmd.Caller {
			return apperrors.NewForbiddenError("only the payer may resume the subscription")
		}
		if err := s.Resume(uc.clock.Now()); err != nil {
			return mapSubscriptionError(err)
		}
		return uc.subscriptionRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription resumed",
		"subscription", s.Address(),
		"payer", cmd.Caller,
		"next_payment", s.NextPayment().Unix(),
	)
	return toSubscriptionResult(s), nil
}

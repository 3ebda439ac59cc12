package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type PauseSubscriptionCommand struct {
	SubscriptionAddress string
	Caller              string
}

// PauseSubscriptionUseCase lets the payer stop payments without ending the
// agreement.
type PauseSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewPauseSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *PauseSubscriptionUseCase {
	return &PauseSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *PauseSubscriptionUseCase) Execute(ctx context.Context, cmd PauseSubscriptionCommand) (*SubscriptionResult, error) {
	var s *subscription.Subscription

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if s.Payer() != cmd.Caller {
			return apperrors.NewForbiddenError("only the payer may pause the subscription")
		}
		if err := s.Pause(uc.clock.Now()); err != nil {
			return mapSubscriptionError(err)
		}
		return uc.subscriptionRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription paused", "subscription", s.Address(), "payer", cmd.Caller)
	return toSubscriptionResult(s), nil
}

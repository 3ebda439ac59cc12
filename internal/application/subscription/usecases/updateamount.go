package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type UpdateAmountCommand struct {
	SubscriptionAddress string
	Caller              string
	Amount              uint64
}

// UpdateAmountUseCase changes the recurring amount. Only the payer may do
// this; once payments have run, the variance band around the original amount
// still applies.
type UpdateAmountUseCase struct {
	subscriptionRepo subscription.Repository
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewUpdateAmountUseCase(
	subscriptionRepo subscription.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *UpdateAmountUseCase {
	return &UpdateAmountUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *UpdateAmountUseCase) Execute(ctx context.Context, cmd UpdateAmountCommand) (*SubscriptionResult, error) {
	var s *subscription.Subscription

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if s.Payer() != cmd.Caller {
			return apperrors.NewForbiddenError("only the payer may update the amount")
		}
		if err := s.UpdateAmount(cmd.Amount, uc.clock.Now()); err != nil {
			return mapSubscriptionError(err)
		}
		return uc.subscriptionRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription amount updated",
		"subscription", s.Address(),
		"amount", cmd.Amount,
	)
	return toSubscriptionResult(s), nil
}

package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type UpdateLimitsCommand struct {
	SubscriptionAddress string
	Caller              string
	MaxPerTransaction   *uint64
	LifetimeCap         *uint64
}

// UpdateLimitsUseCase adjusts the payer's safety limits. Raising the
// lifetime cap re-approves the delegation at the new ceiling.
type UpdateLimitsUseCase struct {
	subscriptionRepo subscription.Repository
	tokenLedger      ledger.TokenLedger
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewUpdateLimitsUseCase(
	subscriptionRepo subscription.Repository,
	tokenLedger ledger.TokenLedger,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *UpdateLimitsUseCase {
	return &UpdateLimitsUseCase{
		subscriptionRepo: subscriptionRepo,
		tokenLedger:      tokenLedger,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *UpdateLimitsUseCase) Execute(ctx context.Context, cmd UpdateLimitsCommand) (*SubscriptionResult, error) {
	var s *subscription.Subscription

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if s.Payer() != cmd.Caller {
			return apperrors.NewForbiddenError("only the payer may update limits")
		}

		capIncreased, err := s.UpdateLimits(cmd.MaxPerTransaction, cmd.LifetimeCap, uc.clock.Now())
		if err != nil {
			return mapSubscriptionError(err)
		}
		if capIncreased {
			if err := uc.tokenLedger.Approve(ctx, s.Payer(), s.Mint(), s.Address(), s.LifetimeCap()); err != nil {
				return err
			}
		}
		return uc.subscriptionRepo.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription limits updated",
		"subscription", s.Address(),
		"max_per_transaction", s.MaxPerTransaction(),
		"lifetime_cap", s.LifetimeCap(),
	)
	return toSubscriptionResult(s), nil
}

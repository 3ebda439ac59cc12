package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type CloseSubscriptionCommand struct {
	SubscriptionAddress string
	Caller              string
}

// CloseSubscriptionUseCase deletes a cancelled subscription's row. Only the
// payer may reclaim the slot, and only once the subscription is inactive.
type CloseSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            ledger.Clock
	txManager        TransactionManager
	logger           logger.Interface
}

func NewCloseSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	log logger.Interface,
) *CloseSubscriptionUseCase {
	return &CloseSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		txManager:        txManager,
		logger:           log,
	}
}

func (uc *CloseSubscriptionUseCase) Execute(ctx context.Context, cmd CloseSubscriptionCommand) error {
	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		s, err := uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if s.Payer() != cmd.Caller {
			return apperrors.NewForbiddenError("only the payer may close the subscription")
		}
		if err := s.EnsureClosable(); err != nil {
			return mapSubscriptionError(err)
		}
		return uc.subscriptionRepo.Delete(ctx, s.Address())
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("subscription closed", "subscription", cmd.SubscriptionAddress, "payer", cmd.Caller)
	return nil
}

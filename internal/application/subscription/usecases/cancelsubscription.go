package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	SubscriptionAddress string
	Caller              string
}

// CancelSubscriptionUseCase permanently ends the agreement and revokes the
// subscription's delegation on the payer's account. Either side can cancel:
// the payer directly, or the merchant's owner.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	merchantRepo     merchant.Repository
	platformRepo     platform.Repository
	tokenLedger      ledger.TokenLedger
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	merchantRepo merchant.Repository,
	platformRepo platform.Repository,
	tokenLedger ledger.TokenLedger,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		merchantRepo:     merchantRepo,
		platformRepo:     platformRepo,
		tokenLedger:      tokenLedger,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*SubscriptionResult, error) {
	var s *subscription.Subscription

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}

		if err := uc.authorizeCancel(ctx, s, cmd.Caller); err != nil {
			return err
		}

		now := uc.clock.Now()
		if err := s.Cancel(now); err != nil {
			return mapSubscriptionError(err)
		}
		if err := uc.subscriptionRepo.Update(ctx, s); err != nil {
			return err
		}

		// The delegation dies with the agreement.
		if err := uc.tokenLedger.Revoke(ctx, s.Payer(), s.Mint()); err != nil {
			return err
		}

		p, err := uc.platformRepo.Get(ctx)
		if err != nil {
			return mapSubscriptionError(err)
		}
		p.OnSubscriptionCancelled(now)
		return uc.platformRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription cancelled",
		"subscription", s.Address(),
		"caller", cmd.Caller,
		"total_paid", s.TotalPaid(),
	)
	return toSubscriptionResult(s), nil
}

func (uc *CancelSubscriptionUseCase) authorizeCancel(ctx context.Context, s *subscription.Subscription, caller string) error {
	if s.Payer() == caller {
		return nil
	}
	m, err := uc.merchantRepo.FindByAddress(ctx, s.Merchant())
	if err == nil && m.Owner() == caller {
		return nil
	}
	return apperrors.NewForbiddenError("only the payer or the merchant may cancel the subscription")
}

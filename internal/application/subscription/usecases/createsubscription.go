package usecases

import (
	"context"
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	Payer             string
	MerchantAddress   string
	Amount            uint64
	FrequencySeconds  int64
	MaxPerTransaction uint64
	LifetimeCap       uint64
	MerchantName      string
}

// CreateSubscriptionUseCase sets up a recurring agreement: it validates the
// merchant's registry standing, persists the subscription, and approves the
// subscription address as a delegate on the payer's token account up to the
// lifetime cap.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	merchantRepo     merchant.Repository
	platformRepo     platform.Repository
	tokenLedger      ledger.TokenLedger
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	merchantRepo merchant.Repository,
	platformRepo platform.Repository,
	tokenLedger ledger.TokenLedger,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
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

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*SubscriptionResult, error) {
	var (
		s *subscription.Subscription
		p *platform.Platform
	)

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.platformRepo.Get(ctx)
		if err != nil {
			return mapSubscriptionError(err)
		}
		if err := p.EnsureNotPaused(); err != nil {
			return mapSubscriptionError(err)
		}

		m, err := uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			if errors.Is(err, merchant.ErrNotFound) {
				return apperrors.NewNotFoundError("merchant is not registered")
			}
			return err
		}
		if m.Tier() == valueobjects.TierSuspended {
			return apperrors.NewForbiddenError("merchant is suspended")
		}
		if !m.Tier().IsVerified() {
			return apperrors.NewForbiddenError("merchant has not been verified")
		}

		s, err = subscription.NewSubscription(
			cmd.Payer,
			cmd.MerchantAddress,
			p.SettlementMint(),
			cmd.Amount,
			cmd.FrequencySeconds,
			cmd.MaxPerTransaction,
			cmd.LifetimeCap,
			cmd.MerchantName,
			uc.clock.Now(),
		)
		if err != nil {
			return mapSubscriptionError(err)
		}

		if err := uc.subscriptionRepo.Create(ctx, s); err != nil {
			return mapSubscriptionError(err)
		}

		// The subscription address becomes the delegate on the payer's
		// account, bounded by the lifetime cap.
		if _, err := uc.tokenLedger.EnsureAccount(ctx, cmd.Payer, p.SettlementMint()); err != nil {
			return err
		}
		if err := uc.tokenLedger.Approve(ctx, cmd.Payer, p.SettlementMint(), s.Address(), cmd.LifetimeCap); err != nil {
			return err
		}

		if err := p.OnSubscriptionCreated(uc.clock.Now()); err != nil {
			return mapSubscriptionError(err)
		}
		return uc.platformRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("subscription created",
		"subscription", s.Address(),
		"payer", cmd.Payer,
		"merchant", cmd.MerchantAddress,
		"amount", cmd.Amount,
		"frequency_seconds", cmd.FrequencySeconds,
	)

	return toSubscriptionResult(s), nil
}

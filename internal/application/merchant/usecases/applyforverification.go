package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type ApplyForVerificationCommand struct {
	Owner        string
	BusinessName string
	WebhookURL   string
	Category     string
}

// ApplyForVerificationUseCase registers a merchant application. The entry
// starts unverified until an admin approves it.
type ApplyForVerificationUseCase struct {
	merchantRepo merchant.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewApplyForVerificationUseCase(
	merchantRepo merchant.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *ApplyForVerificationUseCase {
	return &ApplyForVerificationUseCase{
		merchantRepo: merchantRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *ApplyForVerificationUseCase) Execute(ctx context.Context, cmd ApplyForVerificationCommand) (*MerchantResult, error) {
	if err := utils.ValidateWebhookURL(cmd.WebhookURL); err != nil {
		return nil, err
	}

	var m *merchant.Merchant

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = merchant.NewMerchant(cmd.Owner, cmd.BusinessName, cmd.WebhookURL, cmd.Category, uc.clock.Now())
		if err != nil {
			return mapMerchantError(err)
		}
		if err := uc.merchantRepo.Create(ctx, m); err != nil {
			return mapMerchantError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Infow("merchant application submitted",
		"merchant", m.Address(),
		"owner", cmd.Owner,
		"business_name", cmd.BusinessName,
	)
	return toMerchantResult(m), nil
}

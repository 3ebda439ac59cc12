package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type ApproveMerchantCommand struct {
	MerchantAddress string
	Tier            string
}

// ApproveMerchantUseCase assigns a verification tier after admin review.
// The community tier is excluded: it can only be earned.
type ApproveMerchantUseCase struct {
	merchantRepo merchant.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewApproveMerchantUseCase(
	merchantRepo merchant.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *ApproveMerchantUseCase {
	return &ApproveMerchantUseCase{
		merchantRepo: merchantRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *ApproveMerchantUseCase) Execute(ctx context.Context, cmd ApproveMerchantCommand) (*MerchantResult, error) {
	tier, err := valueobjects.ParseVerificationTier(cmd.Tier)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var m *merchant.Merchant
	err = uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			return mapMerchantError(err)
		}
		if err := m.Approve(tier, uc.clock.Now()); err != nil {
			return mapMerchantError(err)
		}
		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Infow("merchant approved", "merchant", m.Address(), "tier", tier.String())
	return toMerchantResult(m), nil
}

package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type SuspendMerchantCommand struct {
	MerchantAddress string
	Reason          string
}

// SuspendMerchantUseCase takes a merchant off the payment path for
// violations. Admin only.
type SuspendMerchantUseCase struct {
	merchantRepo merchant.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewSuspendMerchantUseCase(
	merchantRepo merchant.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *SuspendMerchantUseCase {
	return &SuspendMerchantUseCase{
		merchantRepo: merchantRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *SuspendMerchantUseCase) Execute(ctx context.Context, cmd SuspendMerchantCommand) (*MerchantResult, error) {
	var m *merchant.Merchant

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			return mapMerchantError(err)
		}
		if err := m.Suspend(cmd.Reason, uc.clock.Now()); err != nil {
			return mapMerchantError(err)
		}
		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Warnw("merchant suspended",
		"merchant", m.Address(),
		"reason", cmd.Reason,
		"score", m.CommunityScore(),
	)
	return toMerchantResult(m), nil
}

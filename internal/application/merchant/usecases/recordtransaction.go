package usecases

import (
	"context"
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type RecordTransactionCommand struct {
	MerchantAddress string
	Amount          uint64
	Success         bool
}

// RecordTransactionUseCase folds a payment outcome into the merchant's stats
// and reputation. It can only be invoked by the payment engine: the
// invocation stack must carry a payments frame, so a direct API call can
// never inflate a merchant's numbers.
type RecordTransactionUseCase struct {
	merchantRepo merchant.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewRecordTransactionUseCase(
	merchantRepo merchant.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		merchantRepo: merchantRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *RecordTransactionUseCase) Execute(ctx context.Context, cmd RecordTransactionCommand) error {
	frame, ok := ledger.CallerFrame(ctx)
	if !ok {
		return mapMerchantError(ledger.ErrMustBeInvokedByCaller)
	}
	if frame.Module != ledger.ModulePayments {
		return mapMerchantError(ledger.ErrUnauthorizedCaller)
	}

	var m *merchant.Merchant
	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			// A subscription can outlive its registry entry; losing the
			// stats update must not fail the payment.
			if errors.Is(err, merchant.ErrNotFound) {
				uc.logger.Warnw("transaction outcome for unknown merchant", "merchant", cmd.MerchantAddress)
				m = nil
				return nil
			}
			return err
		}
		if err := m.RecordTransaction(cmd.Amount, cmd.Success, uc.clock.Now()); err != nil {
			return mapMerchantError(err)
		}
		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Debugw("transaction recorded",
		"merchant", m.Address(),
		"success", cmd.Success,
		"amount", cmd.Amount,
		"score", m.CommunityScore(),
	)
	return nil
}

// RecordTransaction adapts the use case to the payment engine's recorder
// port.
func (uc *RecordTransactionUseCase) RecordTransaction(ctx context.Context, merchantAddress string, amount uint64, success bool) error {
	return uc.Execute(ctx, RecordTransactionCommand{
		MerchantAddress: merchantAddress,
		Amount:          amount,
		Success:         success,
	})
}

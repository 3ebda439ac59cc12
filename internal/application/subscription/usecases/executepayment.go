package usecases

import (
	"context"
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type ExecutePaymentCommand struct {
	SubscriptionAddress string
}

type ExecutePaymentResult struct {
	Subscription     string `json:"subscription"`
	Amount           uint64 `json:"amount"`
	Fee              uint64 `json:"fee"`
	MerchantReceived uint64 `json:"merchant_received"`
	PaymentCount     uint32 `json:"payment_count"`
	NextPayment      int64  `json:"next_payment"`
}

// ExecutePaymentUseCase runs one due payment. The whole execution is a single
// atomic unit of work ordered checks first, state effects second, ledger
// movements last. The subscription's in-progress flag is persisted before any
// ledger movement and cleared after, so a reentrant call triggered from
// inside the settlement path is rejected.
//
// Anyone may trigger execution; every authorization derives from stored
// state, not from the caller.
type ExecutePaymentUseCase struct {
	subscriptionRepo subscription.Repository
	merchantRepo     merchant.Repository
	platformRepo     platform.Repository
	tokenLedger      ledger.TokenLedger
	recorder         MerchantTransactionRecorder
	clock            ledger.Clock
	txManager        TransactionManager
	dispatcher       *events.Dispatcher
	logger           logger.Interface
}

func NewExecutePaymentUseCase(
	subscriptionRepo subscription.Repository,
	merchantRepo merchant.Repository,
	platformRepo platform.Repository,
	tokenLedger ledger.TokenLedger,
	recorder MerchantTransactionRecorder,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *ExecutePaymentUseCase {
	return &ExecutePaymentUseCase{
		subscriptionRepo: subscriptionRepo,
		merchantRepo:     merchantRepo,
		platformRepo:     platformRepo,
		tokenLedger:      tokenLedger,
		recorder:         recorder,
		clock:            clock,
		txManager:        txManager,
		dispatcher:       dispatcher,
		logger:           log,
	}
}

func (uc *ExecutePaymentUseCase) Execute(ctx context.Context, cmd ExecutePaymentCommand) (*ExecutePaymentResult, error) {
	var (
		s   *subscription.Subscription
		p   *platform.Platform
		fee uint64
	)

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		var err error
		p, err = uc.platformRepo.Get(ctx)
		if err != nil {
			return mapSubscriptionError(err)
		}
		s, err = uc.subscriptionRepo.FindByAddress(ctx, cmd.SubscriptionAddress)
		if err != nil {
			return mapSubscriptionError(err)
		}

		// Checks. The stale volume window rolls over before the limit is
		// applied so yesterday's volume never blocks today's payment.
		p.RollVolumeWindow(now)
		if err := p.EnsureNotPaused(); err != nil {
			return mapSubscriptionError(err)
		}
		if err := s.BeginPayment(now); err != nil {
			return mapSubscriptionError(err)
		}
		if err := p.AddVolume(s.Amount(), now); err != nil {
			return mapSubscriptionError(err)
		}

		fee, err = p.CalculateFee(s.Amount())
		if err != nil {
			return mapSubscriptionError(err)
		}
		if fee > s.Amount() {
			return apperrors.NewGuardError("amount does not cover the platform fee")
		}

		m, err := uc.merchantRepo.FindByAddress(ctx, s.Merchant())
		if err != nil {
			return mapSubscriptionError(err)
		}

		// Effects. Schedule and totals are committed to the row before any
		// ledger movement; the in-progress flag stays set.
		if err := s.SettlePayment(fee, now); err != nil {
			return mapSubscriptionError(err)
		}
		if err := uc.subscriptionRepo.Update(ctx, s); err != nil {
			return err
		}
		if err := p.OnPaymentExecuted(now); err != nil {
			return mapSubscriptionError(err)
		}
		if err := uc.platformRepo.Update(ctx, p); err != nil {
			return err
		}

		// Interactions. The subscription address acts as the delegate
		// authority over the payer's account.
		merchantAmount := s.Amount() - fee
		if err := uc.tokenLedger.Transfer(ctx, ledger.TransferRequest{
			Mint:      s.Mint(),
			FromOwner: s.Payer(),
			ToOwner:   m.Owner(),
			Amount:    merchantAmount,
			Authority: s.Address(),
		}); err != nil {
			// Raw ledger errors surface here so the failure path below can
			// classify them; mapping happens on the way out.
			return err
		}
		if fee > 0 {
			if err := uc.tokenLedger.Transfer(ctx, ledger.TransferRequest{
				Mint:      s.Mint(),
				FromOwner: s.Payer(),
				ToOwner:   p.Authority(),
				Amount:    fee,
				Authority: s.Address(),
			}); err != nil {
				return err
			}
		}

		if err := s.CompletePayment(now); err != nil {
			return mapSubscriptionError(err)
		}
		if err := uc.subscriptionRepo.Update(ctx, s); err != nil {
			return err
		}

		// Report the outcome to the registry under the payment engine's
		// invocation frame.
		frameCtx := ledger.PushInvocation(ctx, ledger.Invocation{
			Module:    ledger.ModulePayments,
			Authority: s.Address(),
		})
		return uc.recorder.RecordTransaction(frameCtx, s.Merchant(), s.Amount(), true)
	})
	if err != nil {
		uc.recordFailure(ctx, s, err)
		return nil, mapSubscriptionError(err)
	}

	uc.dispatcher.Dispatch(ctx, s.PullEvents()...)
	uc.logger.Infow("payment executed",
		"subscription", s.Address(),
		"amount", s.Amount(),
		"fee", fee,
		"payment_count", s.PaymentCount(),
	)

	return &ExecutePaymentResult{
		Subscription:     s.Address(),
		Amount:           s.Amount(),
		Fee:              fee,
		MerchantReceived: s.Amount() - fee,
		PaymentCount:     s.PaymentCount(),
		NextPayment:      s.NextPayment().Unix(),
	}, nil
}

// recordFailure notes a settlement failure after the main unit of work rolled
// back: the platform failure counter goes up and the registry learns about
// the failed transaction. Guard rejections (not due, paused, caps) are not
// settlement failures.
func (uc *ExecutePaymentUseCase) recordFailure(ctx context.Context, s *subscription.Subscription, cause error) {
	if s == nil || !isSettlementFailure(cause) {
		return
	}

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		now := uc.clock.Now()

		p, err := uc.platformRepo.Get(ctx)
		if err != nil {
			return err
		}
		p.OnPaymentFailed(now)
		if err := uc.platformRepo.Update(ctx, p); err != nil {
			return err
		}

		frameCtx := ledger.PushInvocation(ctx, ledger.Invocation{
			Module:    ledger.ModulePayments,
			Authority: s.Address(),
		})
		return uc.recorder.RecordTransaction(frameCtx, s.Merchant(), s.Amount(), false)
	})
	if err != nil {
		uc.logger.Errorw("failed to record payment failure",
			"subscription", s.Address(),
			"error", err,
		)
		return
	}

	uc.logger.Warnw("payment failed",
		"subscription", s.Address(),
		"cause", cause.Error(),
	)
}

func isSettlementFailure(err error) bool {
	return errors.Is(err, ledger.ErrInsufficientFunds) ||
		errors.Is(err, ledger.ErrInsufficientDelegation) ||
		errors.Is(err, ledger.ErrAccountNotFound) ||
		errors.Is(err, ledger.ErrUnauthorizedAuthority)
}

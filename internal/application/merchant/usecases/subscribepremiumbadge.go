package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type SubscribePremiumBadgeCommand struct {
	MerchantAddress string
	Caller          string
}

type SubscribePremiumBadgeResult struct {
	Merchant  string `json:"merchant"`
	Price     uint64 `json:"price"`
	ExpiresAt int64  `json:"expires_at"`
}

// SubscribePremiumBadgeUseCase sells thirty days of premium visibility. The
// owner pays the badge price to the platform treasury; only verified
// merchants qualify.
type SubscribePremiumBadgeUseCase struct {
	merchantRepo merchant.Repository
	platformRepo platform.Repository
	tokenLedger  ledger.TokenLedger
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewSubscribePremiumBadgeUseCase(
	merchantRepo merchant.Repository,
	platformRepo platform.Repository,
	tokenLedger ledger.TokenLedger,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *SubscribePremiumBadgeUseCase {
	return &SubscribePremiumBadgeUseCase{
		merchantRepo: merchantRepo,
		platformRepo: platformRepo,
		tokenLedger:  tokenLedger,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *SubscribePremiumBadgeUseCase) Execute(ctx context.Context, cmd SubscribePremiumBadgeCommand) (*SubscribePremiumBadgeResult, error) {
	var m *merchant.Merchant

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			return mapMerchantError(err)
		}
		if m.Owner() != cmd.Caller {
			return apperrors.NewForbiddenError("only the merchant owner may buy the premium badge")
		}

		p, err := uc.platformRepo.Get(ctx)
		if err != nil {
			return err
		}

		if err := m.ActivatePremiumBadge(uc.clock.Now()); err != nil {
			return mapMerchantError(err)
		}

		// The owner pays the badge price into the platform treasury.
		if err := uc.tokenLedger.Transfer(ctx, ledger.TransferRequest{
			Mint:      p.SettlementMint(),
			FromOwner: m.Owner(),
			ToOwner:   p.Authority(),
			Amount:    constants.PremiumBadgePrice,
			Authority: m.Owner(),
		}); err != nil {
			return mapLedgerError(err)
		}

		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, m.PullEvents()...)
	uc.logger.Infow("premium badge activated",
		"merchant", m.Address(),
		"expires_at", m.PremiumBadgeExpires().Unix(),
	)
	return &SubscribePremiumBadgeResult{
		Merchant:  m.Address(),
		Price:     constants.PremiumBadgePrice,
		ExpiresAt: m.PremiumBadgeExpires().Unix(),
	}, nil
}

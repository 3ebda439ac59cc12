package usecases

import (
	"context"
	"errors"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type InitializePlatformCommand struct {
	Authority        string
	SettlementMint   string
	DailyVolumeLimit uint64
	FeeBasisPoints   uint16
}

type InitializePlatformResult struct {
	Address          string `json:"address"`
	Authority        string `json:"authority"`
	SettlementMint   string `json:"settlement_mint"`
	FeeAccount       string `json:"fee_account"`
	DailyVolumeLimit uint64 `json:"daily_volume_limit"`
	FeeBasisPoints   uint16 `json:"fee_basis_points"`
}

// InitializePlatformUseCase performs the one-time platform setup: it creates
// the fee collection account on the ledger and persists the state singleton.
type InitializePlatformUseCase struct {
	platformRepo platform.Repository
	tokenLedger  ledger.TokenLedger
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewInitializePlatformUseCase(
	platformRepo platform.Repository,
	tokenLedger ledger.TokenLedger,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *InitializePlatformUseCase {
	return &InitializePlatformUseCase{
		platformRepo: platformRepo,
		tokenLedger:  tokenLedger,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *InitializePlatformUseCase) Execute(ctx context.Context, cmd InitializePlatformCommand) (*InitializePlatformResult, error) {
	var p *platform.Platform

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.platformRepo.Get(ctx); err == nil {
			return apperrors.NewConflictError("platform is already initialized")
		} else if !errors.Is(err, platform.ErrNotFound) {
			return err
		}

		feeAccount, err := uc.tokenLedger.EnsureAccount(ctx, cmd.Authority, cmd.SettlementMint)
		if err != nil {
			return err
		}

		p, err = platform.NewPlatform(cmd.Authority, cmd.SettlementMint, feeAccount, cmd.DailyVolumeLimit, cmd.FeeBasisPoints, uc.clock.Now())
		if err != nil {
			return mapPlatformError(err)
		}

		return uc.platformRepo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, p.PullEvents()...)
	uc.logger.Infow("platform initialized",
		"authority", cmd.Authority,
		"fee_basis_points", cmd.FeeBasisPoints,
		"daily_volume_limit", cmd.DailyVolumeLimit,
	)

	return &InitializePlatformResult{
		Address:          p.Address(),
		Authority:        p.Authority(),
		SettlementMint:   p.SettlementMint(),
		FeeAccount:       p.FeeAccount(),
		DailyVolumeLimit: p.DailyVolumeLimit(),
		FeeBasisPoints:   p.FeeBasisPoints(),
	}, nil
}

// mapPlatformError converts domain errors into transport-ready app errors.
func mapPlatformError(err error) error {
	switch {
	case errors.Is(err, platform.ErrFeeTooLow),
		errors.Is(err, platform.ErrFeeTooHigh),
		errors.Is(err, platform.ErrInvalidFeeBounds),
		errors.Is(err, platform.ErrAuthorityRequired),
		errors.Is(err, platform.ErrSettlementMintRequired):
		return apperrors.NewValidationError(err.Error())
	case errors.Is(err, platform.ErrNotFound):
		return apperrors.NewNotFoundError(err.Error())
	case errors.Is(err, platform.ErrAlreadyPaused),
		errors.Is(err, platform.ErrNotPaused):
		return apperrors.NewConflictError(err.Error())
	case errors.Is(err, platform.ErrSystemPaused),
		errors.Is(err, platform.ErrDailyVolumeLimitExceeded):
		return apperrors.NewGuardError(err.Error())
	default:
		return err
	}
}

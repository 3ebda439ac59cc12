package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type UpdatePlatformConfigCommand struct {
	Authority        string
	FeeBasisPoints   *uint16
	MinFee           *uint64
	MaxFee           *uint64
	DailyVolumeLimit *uint64
}

type UpdatePlatformConfigResult struct {
	FeeBasisPoints   uint16 `json:"fee_basis_points"`
	MinFee           uint64 `json:"min_fee"`
	MaxFee           uint64 `json:"max_fee"`
	DailyVolumeLimit uint64 `json:"daily_volume_limit"`
}

// UpdatePlatformConfigUseCase lets the platform authority adjust fee policy
// and the volume limit.
type UpdatePlatformConfigUseCase struct {
	platformRepo platform.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewUpdatePlatformConfigUseCase(
	platformRepo platform.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *UpdatePlatformConfigUseCase {
	return &UpdatePlatformConfigUseCase{
		platformRepo: platformRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *UpdatePlatformConfigUseCase) Execute(ctx context.Context, cmd UpdatePlatformConfigCommand) (*UpdatePlatformConfigResult, error) {
	var p *platform.Platform

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.platformRepo.Get(ctx)
		if err != nil {
			return mapPlatformError(err)
		}
		if p.Authority() != cmd.Authority {
			return apperrors.NewForbiddenError("only the platform authority may update config")
		}
		if err := p.UpdateConfig(cmd.FeeBasisPoints, cmd.MinFee, cmd.MaxFee, cmd.DailyVolumeLimit, uc.clock.Now()); err != nil {
			return mapPlatformError(err)
		}
		return uc.platformRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	uc.dispatcher.Dispatch(ctx, p.PullEvents()...)
	uc.logger.Infow("platform config updated",
		"fee_basis_points", p.FeeBasisPoints(),
		"min_fee", p.MinFee(),
		"max_fee", p.MaxFee(),
		"daily_volume_limit", p.DailyVolumeLimit(),
	)

	return &UpdatePlatformConfigResult{
		FeeBasisPoints:   p.FeeBasisPoints(),
		MinFee:           p.MinFee(),
		MaxFee:           p.MaxFee(),
		DailyVolumeLimit: p.DailyVolumeLimit(),
	}, nil
}

package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type EmergencyPauseCommand struct {
	Authority string
	// Pause activates the emergency stop; false lifts it.
	Pause bool
}

// EmergencyPauseUseCase flips the system-wide kill switch. Lifting the pause
// also resets the volume window and failure counters.
type EmergencyPauseUseCase struct {
	platformRepo platform.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	dispatcher   *events.Dispatcher
	logger       logger.Interface
}

func NewEmergencyPauseUseCase(
	platformRepo platform.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	dispatcher *events.Dispatcher,
	log logger.Interface,
) *EmergencyPauseUseCase {
	return &EmergencyPauseUseCase{
		platformRepo: platformRepo,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *EmergencyPauseUseCase) Execute(ctx context.Context, cmd EmergencyPauseCommand) error {
	var p *platform.Platform

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = uc.platformRepo.Get(ctx)
		if err != nil {
			return mapPlatformError(err)
		}
		if p.Authority() != cmd.Authority {
			return apperrors.NewForbiddenError("only the platform authority may pause the system")
		}

		now := uc.clock.Now()
		if cmd.Pause {
			err = p.EmergencyPause(now)
		} else {
			err = p.EmergencyUnpause(now)
		}
		if err != nil {
			return mapPlatformError(err)
		}
		return uc.platformRepo.Update(ctx, p)
	})
	if err != nil {
		return err
	}

	uc.dispatcher.Dispatch(ctx, p.PullEvents()...)
	if cmd.Pause {
		uc.logger.Warnw("emergency pause activated", "authority", cmd.Authority)
	} else {
		uc.logger.Infow("emergency pause lifted", "authority", cmd.Authority)
	}
	return nil
}

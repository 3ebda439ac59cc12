package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type UpdateMerchantInfoCommand struct {
	MerchantAddress string
	Caller          string
	BusinessName    *string
	WebhookURL      *string
	Category        *string
}

// UpdateMerchantInfoUseCase lets the merchant owner change business details.
type UpdateMerchantInfoUseCase struct {
	merchantRepo merchant.Repository
	clock        ledger.Clock
	txManager    TransactionManager
	logger       logger.Interface
}

func NewUpdateMerchantInfoUseCase(
	merchantRepo merchant.Repository,
	clock ledger.Clock,
	txManager TransactionManager,
	log logger.Interface,
) *UpdateMerchantInfoUseCase {
	return &UpdateMerchantInfoUseCase{
		merchantRepo: merchantRepo,
		clock:        clock,
		txManager:    txManager,
		logger:       log,
	}
}

func (uc *UpdateMerchantInfoUseCase) Execute(ctx context.Context, cmd UpdateMerchantInfoCommand) (*MerchantResult, error) {
	if cmd.WebhookURL != nil {
		if err := utils.ValidateWebhookURL(*cmd.WebhookURL); err != nil {
			return nil, err
		}
	}

	var m *merchant.Merchant

	err := uc.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		m, err = uc.merchantRepo.FindByAddress(ctx, cmd.MerchantAddress)
		if err != nil {
			return mapMerchantError(err)
		}
		if m.Owner() != cmd.Caller {
			return apperrors.NewForbiddenError("only the merchant owner may update merchant info")
		}
		if err := m.UpdateInfo(cmd.BusinessName, cmd.WebhookURL, cmd.Category, uc.clock.Now()); err != nil {
			return mapMerchantError(err)
		}
		return uc.merchantRepo.Update(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("merchant info updated", "merchant", m.Address())
	return toMerchantResult(m), nil
}

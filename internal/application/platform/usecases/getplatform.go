package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
)

type PlatformStateResult struct {
	Address            string `json:"address"`
	Authority          string `json:"authority"`
	SettlementMint     string `json:"settlement_mint"`
	FeeAccount         string `json:"fee_account"`
	DailyVolumeLimit   uint64 `json:"daily_volume_limit"`
	Volume24h          uint64 `json:"volume_24h"`
	LastVolumeReset    int64  `json:"last_volume_reset"`
	FailedTxCount      uint16 `json:"failed_tx_count"`
	EmergencyPause     bool   `json:"emergency_pause"`
	FeeBasisPoints     uint16 `json:"fee_basis_points"`
	MinFee             uint64 `json:"min_fee"`
	MaxFee             uint64 `json:"max_fee"`
	TotalSubscriptions uint64 `json:"total_subscriptions"`
	TotalTransactions  uint64 `json:"total_transactions"`
}

// GetPlatformUseCase returns the current platform state.
type GetPlatformUseCase struct {
	platformRepo platform.Repository
}

func NewGetPlatformUseCase(platformRepo platform.Repository) *GetPlatformUseCase {
	return &GetPlatformUseCase{platformRepo: platformRepo}
}

func (uc *GetPlatformUseCase) Execute(ctx context.Context) (*PlatformStateResult, error) {
	p, err := uc.platformRepo.Get(ctx)
	if err != nil {
		return nil, mapPlatformError(err)
	}
	return &PlatformStateResult{
		Address:            p.Address(),
		Authority:          p.Authority(),
		SettlementMint:     p.SettlementMint(),
		FeeAccount:         p.FeeAccount(),
		DailyVolumeLimit:   p.DailyVolumeLimit(),
		Volume24h:          p.Volume24h(),
		LastVolumeReset:    biztime.ToUnix(p.LastVolumeReset()),
		FailedTxCount:      p.FailedTxCount(),
		EmergencyPause:     p.IsPaused(),
		FeeBasisPoints:     p.FeeBasisPoints(),
		MinFee:             p.MinFee(),
		MaxFee:             p.MaxFee(),
		TotalSubscriptions: p.TotalSubscriptions(),
		TotalTransactions:  p.TotalTransactions(),
	}, nil
}

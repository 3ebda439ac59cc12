// Package mappers converts between domain aggregates and persistence models.
package mappers

import (
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
)

type PlatformMapper struct{}

func NewPlatformMapper() *PlatformMapper {
	return &PlatformMapper{}
}

func (m *PlatformMapper) ToModel(p *platform.Platform) *models.PlatformStateModel {
	return &models.PlatformStateModel{
		Address:          p.Address(),
		Authority:        p.Authority(),
		SettlementMint:   p.SettlementMint(),
		FeeAccount:       p.FeeAccount(),
		DailyVolumeLimit: p.DailyVolumeLimit(),
		Volume24h:        p.Volume24h(),
		LastVolumeReset:  p.LastVolumeReset(),
		FailedTxCount:    p.FailedTxCount(),
		EmergencyPause:   p.IsPaused(),
		FeeBasisPoints:   p.FeeBasisPoints(),
		MinFee:           p.MinFee(),
		MaxFee:           p.MaxFee(),
		TotalSubs:        p.TotalSubscriptions(),
		TotalTxns:        p.TotalTransactions(),
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func (m *PlatformMapper) ToDomain(model *models.PlatformStateModel) *platform.Platform {
	return platform.ReconstructPlatform(
		model.Address,
		model.Authority,
		model.SettlementMint,
		model.FeeAccount,
		model.DailyVolumeLimit,
		model.Volume24h,
		model.LastVolumeReset,
		model.FailedTxCount,
		model.EmergencyPause,
		model.FeeBasisPoints,
		model.MinFee,
		model.MaxFee,
		model.TotalSubs,
		model.TotalTxns,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

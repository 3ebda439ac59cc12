// Package models contains the GORM persistence models.
package models

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
)

// PlatformStateModel is the singleton platform row.
type PlatformStateModel struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	Address          string    `gorm:"column:address;type:varchar(64);uniqueIndex;not null"`
	Authority        string    `gorm:"column:authority;type:varchar(64);not null"`
	SettlementMint   string    `gorm:"column:settlement_mint;type:varchar(64);not null"`
	FeeAccount       string    `gorm:"column:fee_account;type:varchar(64);not null"`
	DailyVolumeLimit uint64    `gorm:"column:daily_volume_limit;not null"`
	Volume24h        uint64    `gorm:"column:volume_24h;not null;default:0"`
	LastVolumeReset  time.Time `gorm:"column:last_volume_reset;not null"`
	FailedTxCount    uint16    `gorm:"column:failed_tx_count;not null;default:0"`
	EmergencyPause   bool      `gorm:"column:emergency_pause;not null;default:false"`
	FeeBasisPoints   uint16    `gorm:"column:fee_basis_points;not null"`
	MinFee           uint64    `gorm:"column:min_fee;not null"`
	MaxFee           uint64    `gorm:"column:max_fee;not null"`
	TotalSubs        uint64    `gorm:"column:total_subscriptions;not null;default:0"`
	TotalTxns        uint64    `gorm:"column:total_transactions;not null;default:0"`
	Version          int       `gorm:"column:version;not null;default:1"`
	CreatedAt        time.Time `gorm:"column:created_at;not null"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null"`
}

func (PlatformStateModel) TableName() string {
	return constants.TablePlatformStates
}

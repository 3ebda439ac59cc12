package models

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
)

// MerchantModel is the persistence row for a registry entry.
type MerchantModel struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"`
	Address             string    `gorm:"column:address;type:varchar(64);uniqueIndex;not null"`
	Owner               string    `gorm:"column:owner;type:varchar(64);uniqueIndex;not null"`
	BusinessName        string    `gorm:"column:business_name;type:varchar(64);not null"`
	WebhookURL          string    `gorm:"column:webhook_url;type:varchar(128);not null"`
	Category            string    `gorm:"column:category;type:varchar(32);not null"`
	Tier                string    `gorm:"column:tier;type:varchar(16);index;not null"`
	CommunityScore      int32     `gorm:"column:community_score;not null;default:0"`
	TotalTransactions   uint64    `gorm:"column:total_transactions;not null;default:0"`
	TotalVolume         uint64    `gorm:"column:total_volume;not null;default:0"`
	FailedTransactions  uint32    `gorm:"column:failed_transactions;not null;default:0"`
	PremiumBadgeActive  bool      `gorm:"column:premium_badge_active;not null;default:false"`
	PremiumBadgeExpires int64     `gorm:"column:premium_badge_expires;not null;default:0"`
	Version             int       `gorm:"column:version;not null;default:1"`
	CreatedAt           time.Time `gorm:"column:created_at;not null"`
	UpdatedAt           time.Time `gorm:"column:updated_at;not null"`
}

func (MerchantModel) TableName() string {
	return constants.TableMerchants
}

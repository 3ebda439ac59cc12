package models

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
)

// SubscriptionModel is the persistence row for a subscription.
// last_payment and next_payment are Unix seconds so due-payment scans stay
// index-friendly integer comparisons.
type SubscriptionModel struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	Address           string    `gorm:"column:address;type:varchar(64);uniqueIndex;not null"`
	Payer             string    `gorm:"column:payer;type:varchar(64);index;not null"`
	Merchant          string    `gorm:"column:merchant;type:varchar(64);index;not null"`
	Mint              string    `gorm:"column:mint;type:varchar(64);not null"`
	Amount            uint64    `gorm:"column:amount;not null"`
	OriginalAmount    uint64    `gorm:"column:original_amount;not null"`
	FrequencySeconds  int64     `gorm:"column:frequency_seconds;not null"`
	LastPayment       int64     `gorm:"column:last_payment;not null;default:0"`
	NextPayment       int64     `gorm:"column:next_payment;index;not null"`
	TotalPaid         uint64    `gorm:"column:total_paid;not null;default:0"`
	PaymentCount      uint32    `gorm:"column:payment_count;not null;default:0"`
	IsActive          bool      `gorm:"column:is_active;index;not null;default:true"`
	IsPaused          bool      `gorm:"column:is_paused;not null;default:false"`
	PaymentInProgress bool      `gorm:"column:payment_in_progress;not null;default:false"`
	MaxPerTransaction uint64    `gorm:"column:max_per_transaction;not null"`
	LifetimeCap       uint64    `gorm:"column:lifetime_cap;not null"`
	MerchantName      string    `gorm:"column:merchant_name;type:varchar(32);not null"`
	Version           int       `gorm:"column:version;not null;default:1"`
	CreatedAt         time.Time `gorm:"column:created_at;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

package models

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
)

// TokenAccountModel is one (owner, mint) balance account, including its
// delegation state.
type TokenAccountModel struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	Address         string    `gorm:"column:address;type:varchar(64);uniqueIndex;not null"`
	Owner           string    `gorm:"column:owner;type:varchar(64);uniqueIndex:idx_owner_mint;not null"`
	Mint            string    `gorm:"column:mint;type:varchar(64);uniqueIndex:idx_owner_mint;not null"`
	Balance         uint64    `gorm:"column:balance;not null;default:0"`
	Delegate        string    `gorm:"column:delegate;type:varchar(64);not null;default:''"`
	DelegatedAmount uint64    `gorm:"column:delegated_amount;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;not null"`
	UpdatedAt       time.Time `gorm:"column:updated_at;not null"`
}

func (TokenAccountModel) TableName() string {
	return constants.TableTokenAccounts
}

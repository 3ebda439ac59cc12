package models

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/shared/constants"
)

// ReviewModel is the persistence row for a merchant review.
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Address   string    `gorm:"column:address;type:varchar(64);uniqueIndex;not null"`
	Merchant  string    `gorm:"column:merchant;type:varchar(64);index;not null"`
	Reviewer  string    `gorm:"column:reviewer;type:varchar(64);not null"`
	Rating    uint8     `gorm:"column:rating;not null"`
	Comment   string    `gorm:"column:comment;type:varchar(256);not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ReviewModel) TableName() string {
	return constants.TableReviews
}

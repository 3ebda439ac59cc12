package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/mappers"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

type ReviewRepository struct {
	db     *gorm.DB
	mapper *mappers.MerchantMapper
}

func NewReviewRepository(database *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		db:     database,
		mapper: mappers.NewMerchantMapper(),
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review *merchant.Review) error {
	model := r.mapper.ReviewToModel(review)
	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return merchant.ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) FindByAddress(ctx context.Context, address string) (*merchant.Review, error) {
	var model models.ReviewModel
	if err := db.FromContext(ctx, r.db).Where("address = ?", address).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, merchant.ErrReviewNotFound
		}
		return nil, err
	}
	return r.mapper.ReviewToDomain(&model), nil
}

func (r *ReviewRepository) ListByMerchant(ctx context.Context, merchantAddr string, offset, limit int) ([]*merchant.Review, int64, error) {
	conn := db.FromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.ReviewModel{}).Where("merchant = ?", merchantAddr).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReviewModel
	if err := conn.Where("merchant = ?", merchantAddr).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]*merchant.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, r.mapper.ReviewToDomain(&rows[i]))
	}
	return reviews, total, nil
}

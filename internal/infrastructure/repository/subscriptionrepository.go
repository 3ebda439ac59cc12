package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/mappers"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

type SubscriptionRepository struct {
	db     *gorm.DB
	mapper *mappers.SubscriptionMapper
}

func NewSubscriptionRepository(database *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:     database,
		mapper: mappers.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	model := r.mapper.ToModel(s)
	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return subscription.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *SubscriptionRepository) FindByAddress(ctx context.Context, address string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := db.FromContext(ctx, r.db).Where("address = ?", address).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subscription.ErrNotFound
		}
		return nil, err
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SubscriptionRepository) FindByPayer(ctx context.Context, payer string, offset, limit int) ([]*subscription.Subscription, int64, error) {
	return r.findWhere(ctx, "payer = ?", payer, offset, limit)
}

func (r *SubscriptionRepository) FindByMerchant(ctx context.Context, merchant string, offset, limit int) ([]*subscription.Subscription, int64, error) {
	return r.findWhere(ctx, "merchant = ?", merchant, offset, limit)
}

func (r *SubscriptionRepository) findWhere(ctx context.Context, query string, arg string, offset, limit int) ([]*subscription.Subscription, int64, error) {
	conn := db.FromContext(ctx, r.db)

	var total int64
	if err := conn.Model(&models.SubscriptionModel{}).Where(query, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SubscriptionModel
	if err := conn.Where(query, arg).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	subs := make([]*subscription.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, r.mapper.ToDomain(&rows[i]))
	}
	return subs, total, nil
}

func (r *SubscriptionRepository) FindDue(ctx context.Context, nowUnix int64, limit int) ([]*subscription.Subscription, error) {
	var rows []models.SubscriptionModel
	if err := db.FromContext(ctx, r.db).
		Where("is_active = ? AND is_paused = ? AND next_payment <= ?", true, false, nowUnix).
		Order("next_payment ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	subs := make([]*subscription.Subscription, 0, len(rows))
	for i := range rows {
		subs = append(subs, r.mapper.ToDomain(&rows[i]))
	}
	return subs, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	model := r.mapper.ToModel(s)
	result := db.FromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("address = ? AND version < ?", model.Address, model.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("subscription was modified concurrently")
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, address string) error {
	result := db.FromContext(ctx, r.db).
		Where("address = ?", address).
		Delete(&models.SubscriptionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return subscription.ErrNotFound
	}
	return nil
}

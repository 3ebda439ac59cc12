package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/mappers"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

type MerchantRepository struct {
	db     *gorm.DB
	mapper *mappers.MerchantMapper
}

func NewMerchantRepository(database *gorm.DB) *MerchantRepository {
	return &MerchantRepository{
		db:     database,
		mapper: mappers.NewMerchantMapper(),
	}
}

func (r *MerchantRepository) Create(ctx context.Context, m *merchant.Merchant) error {
	model := r.mapper.ToModel(m)
	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return merchant.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *MerchantRepository) FindByAddress(ctx context.Context, address string) (*merchant.Merchant, error) {
	return r.findOne(ctx, "address = ?", address)
}

func (r *MerchantRepository) FindByOwner(ctx context.Context, owner string) (*merchant.Merchant, error) {
	return r.findOne(ctx, "owner = ?", owner)
}

func (r *MerchantRepository) findOne(ctx context.Context, query, arg string) (*merchant.Merchant, error) {
	var model models.MerchantModel
	if err := db.FromContext(ctx, r.db).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, merchant.ErrNotFound
		}
		return nil, err
	}
	return r.mapper.ToDomain(&model)
}

func (r *MerchantRepository) List(ctx context.Context, tier *valueobjects.VerificationTier, offset, limit int) ([]*merchant.Merchant, int64, error) {
	conn := db.FromContext(ctx, r.db)

	query := conn.Model(&models.MerchantModel{})
	if tier != nil {
		query = query.Where("tier = ?", tier.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MerchantModel
	if err := query.
		Order("community_score DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	merchants := make([]*merchant.Merchant, 0, len(rows))
	for i := range rows {
		m, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		merchants = append(merchants, m)
	}
	return merchants, total, nil
}

func (r *MerchantRepository) Update(ctx context.Context, m *merchant.Merchant) error {
	model := r.mapper.ToModel(m)
	result := db.FromContext(ctx, r.db).
		Model(&models.MerchantModel{}).
		Where("address = ? AND version < ?", model.Address, model.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("merchant was modified concurrently")
	}
	return nil
}

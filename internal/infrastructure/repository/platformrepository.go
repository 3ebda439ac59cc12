// Package repository contains the GORM-backed repository implementations.
// Every method joins the transaction carried in the context when one is
// present.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/mappers"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

type PlatformRepository struct {
	db     *gorm.DB
	mapper *mappers.PlatformMapper
}

func NewPlatformRepository(database *gorm.DB) *PlatformRepository {
	return &PlatformRepository{
		db:     database,
		mapper: mappers.NewPlatformMapper(),
	}
}

func (r *PlatformRepository) Create(ctx context.Context, p *platform.Platform) error {
	model := r.mapper.ToModel(p)
	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return platform.ErrAlreadyInitialized
		}
		return err
	}
	return nil
}

func (r *PlatformRepository) Get(ctx context.Context) (*platform.Platform, error) {
	var model models.PlatformStateModel
	if err := db.FromContext(ctx, r.db).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platform.ErrNotFound
		}
		return nil, err
	}
	return r.mapper.ToDomain(&model), nil
}

// Update persists the aggregate, guarded by the monotonically increasing
// version: a concurrent writer that already advanced the row wins and this
// write reports a conflict.
func (r *PlatformRepository) Update(ctx context.Context, p *platform.Platform) error {
	model := r.mapper.ToModel(p)
	result := db.FromContext(ctx, r.db).
		Model(&models.PlatformStateModel{}).
		Where("address = ? AND version < ?", model.Address, model.Version).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflictError("platform state was modified concurrently")
	}
	return nil
}

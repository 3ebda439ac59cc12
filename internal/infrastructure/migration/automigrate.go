package migration

import (
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.PlatformStateModel{},
		&models.SubscriptionModel{},
		&models.MerchantModel{},
		&models.ReviewModel{},
		&models.TokenAccountModel{},
	}
}

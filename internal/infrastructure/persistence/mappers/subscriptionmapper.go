package mappers

import (
	"time"

	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) ToModel(s *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		Address:           s.Address(),
		Payer:             s.Payer(),
		Merchant:          s.Merchant(),
		Mint:              s.Mint(),
		Amount:            s.Amount(),
		OriginalAmount:    s.OriginalAmount(),
		FrequencySeconds:  s.FrequencySeconds(),
		LastPayment:       biztime.ToUnix(s.LastPayment()),
		NextPayment:       biztime.ToUnix(s.NextPayment()),
		TotalPaid:         s.TotalPaid(),
		PaymentCount:      s.PaymentCount(),
		IsActive:          s.IsActive(),
		IsPaused:          s.IsPaused(),
		PaymentInProgress: s.PaymentInProgress(),
		MaxPerTransaction: s.MaxPerTransaction(),
		LifetimeCap:       s.LifetimeCap(),
		MerchantName:      s.MerchantName(),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func (m *SubscriptionMapper) ToDomain(model *models.SubscriptionModel) *subscription.Subscription {
	// last_payment of 0 means no payment has ever run.
	var lastPayment time.Time
	if model.LastPayment != 0 {
		lastPayment = biztime.FromUnix(model.LastPayment)
	}
	return subscription.ReconstructSubscription(
		model.Address,
		model.Payer,
		model.Merchant,
		model.Mint,
		model.Amount,
		model.OriginalAmount,
		model.FrequencySeconds,
		lastPayment,
		biztime.FromUnix(model.NextPayment),
		model.TotalPaid,
		model.PaymentCount,
		model.IsActive,
		model.IsPaused,
		model.PaymentInProgress,
		model.MaxPerTransaction,
		model.LifetimeCap,
		model.MerchantName,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

package mappers

import (
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
)

type MerchantMapper struct{}

func NewMerchantMapper() *MerchantMapper {
	return &MerchantMapper{}
}

func (m *MerchantMapper) ToModel(mc *merchant.Merchant) *models.MerchantModel {
	return &models.MerchantModel{
		Address:             mc.Address(),
		Owner:               mc.Owner(),
		BusinessName:        mc.BusinessName(),
		WebhookURL:          mc.WebhookURL(),
		Category:            mc.Category(),
		Tier:                mc.Tier().String(),
		CommunityScore:      mc.CommunityScore(),
		TotalTransactions:   mc.TotalTransactions(),
		TotalVolume:         mc.TotalVolume(),
		FailedTransactions:  mc.FailedTransactions(),
		PremiumBadgeActive:  mc.PremiumBadgeActive(),
		PremiumBadgeExpires: biztime.ToUnix(mc.PremiumBadgeExpires()),
		Version:             mc.Version(),
		CreatedAt:           mc.CreatedAt(),
		UpdatedAt:           mc.UpdatedAt(),
	}
}

func (m *MerchantMapper) ToDomain(model *models.MerchantModel) (*merchant.Merchant, error) {
	tier, err := valueobjects.ParseVerificationTier(model.Tier)
	if err != nil {
		return nil, err
	}
	return merchant.ReconstructMerchant(
		model.Address,
		model.Owner,
		model.BusinessName,
		model.WebhookURL,
		model.Category,
		tier,
		model.CommunityScore,
		model.TotalTransactions,
		model.TotalVolume,
		model.FailedTransactions,
		model.PremiumBadgeActive,
		biztime.FromUnix(model.PremiumBadgeExpires),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

func (m *MerchantMapper) ReviewToModel(r *merchant.Review) *models.ReviewModel {
	return &models.ReviewModel{
		Address:   r.Address(),
		Merchant:  r.Merchant(),
		Reviewer:  r.Reviewer(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}

func (m *MerchantMapper) ReviewToDomain(model *models.ReviewModel) *merchant.Review {
	return merchant.ReconstructReview(
		model.Address,
		model.Merchant,
		model.Reviewer,
		model.Rating,
		model.Comment,
		model.CreatedAt,
	)
}

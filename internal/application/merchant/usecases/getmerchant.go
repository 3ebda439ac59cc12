package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

// GetMerchantUseCase reads a single registry entry.
type GetMerchantUseCase struct {
	merchantRepo merchant.Repository
}

func NewGetMerchantUseCase(merchantRepo merchant.Repository) *GetMerchantUseCase {
	return &GetMerchantUseCase{merchantRepo: merchantRepo}
}

func (uc *GetMerchantUseCase) Execute(ctx context.Context, address string) (*MerchantResult, error) {
	m, err := uc.merchantRepo.FindByAddress(ctx, address)
	if err != nil {
		return nil, mapMerchantError(err)
	}
	return toMerchantResult(m), nil
}

type ListMerchantsQuery struct {
	Tier   string
	Offset int
	Limit  int
}

type ListMerchantsResult struct {
	Items []*MerchantResult `json:"items"`
	Total int64             `json:"total"`
}

// ListMerchantsUseCase pages through the registry, optionally by tier.
type ListMerchantsUseCase struct {
	merchantRepo merchant.Repository
}

func NewListMerchantsUseCase(merchantRepo merchant.Repository) *ListMerchantsUseCase {
	return &ListMerchantsUseCase{merchantRepo: merchantRepo}
}

func (uc *ListMerchantsUseCase) Execute(ctx context.Context, q ListMerchantsQuery) (*ListMerchantsResult, error) {
	var tier *valueobjects.VerificationTier
	if q.Tier != "" {
		parsed, err := valueobjects.ParseVerificationTier(q.Tier)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		tier = &parsed
	}

	merchants, total, err := uc.merchantRepo.List(ctx, tier, q.Offset, q.Limit)
	if err != nil {
		return nil, mapMerchantError(err)
	}

	items := make([]*MerchantResult, 0, len(merchants))
	for _, m := range merchants {
		items = append(items, toMerchantResult(m))
	}
	return &ListMerchantsResult{Items: items, Total: total}, nil
}

type ListReviewsResult struct {
	Items []*ReviewResult `json:"items"`
	Total int64           `json:"total"`
}

// ListReviewsUseCase pages through a merchant's reviews.
type ListReviewsUseCase struct {
	reviewRepo merchant.ReviewRepository
}

func NewListReviewsUseCase(reviewRepo merchant.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListReviewsUseCase) Execute(ctx context.Context, merchantAddress string, offset, limit int) (*ListReviewsResult, error) {
	reviews, total, err := uc.reviewRepo.ListByMerchant(ctx, merchantAddress, offset, limit)
	if err != nil {
		return nil, mapMerchantError(err)
	}
	items := make([]*ReviewResult, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, toReviewResult(r))
	}
	return &ListReviewsResult{Items: items, Total: total}, nil
}

package usecases

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
)

// GetSubscriptionUseCase reads a single subscription.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.Repository) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, address string) (*SubscriptionResult, error) {
	s, err := uc.subscriptionRepo.FindByAddress(ctx, address)
	if err != nil {
		return nil, mapSubscriptionError(err)
	}
	return toSubscriptionResult(s), nil
}

type ListSubscriptionsQuery struct {
	Payer    string
	Merchant string
	Offset   int
	Limit    int
}

type ListSubscriptionsResult struct {
	Items []*SubscriptionResult `json:"items"`
	Total int64                 `json:"total"`
}

// ListSubscriptionsUseCase pages through a payer's or merchant's
// subscriptions.
type ListSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
}

func NewListSubscriptionsUseCase(subscriptionRepo subscription.Repository) *ListSubscriptionsUseCase {
	return &ListSubscriptionsUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *ListSubscriptionsUseCase) Execute(ctx context.Context, q ListSubscriptionsQuery) (*ListSubscriptionsResult, error) {
	var (
		subs  []*subscription.Subscription
		total int64
		err   error
	)
	switch {
	case q.Payer != "":
		subs, total, err = uc.subscriptionRepo.FindByPayer(ctx, q.Payer, q.Offset, q.Limit)
	case q.Merchant != "":
		subs, total, err = uc.subscriptionRepo.FindByMerchant(ctx, q.Merchant, q.Offset, q.Limit)
	default:
		subs, total, err = nil, 0, nil
	}
	if err != nil {
		return nil, mapSubscriptionError(err)
	}

	items := make([]*SubscriptionResult, 0, len(subs))
	for _, s := range subs {
		items = append(items, toSubscriptionResult(s))
	}
	return &ListSubscriptionsResult{Items: items, Total: total}, nil
}

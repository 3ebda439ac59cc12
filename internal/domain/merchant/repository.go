package merchant

import (
	"context"

	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
)

// Repository persists merchants with optimistic locking on the version field.
type Repository interface {
	Create(ctx context.Context, m *Merchant) error
	FindByAddress(ctx context.Context, address string) (*Merchant, error)
	FindByOwner(ctx context.Context, owner string) (*Merchant, error)
	List(ctx context.Context, tier *valueobjects.VerificationTier, offset, limit int) ([]*Merchant, int64, error)
	Update(ctx context.Context, m *Merchant) error
}

// ReviewRepository persists reviews. Create must reject a second review from
// the same reviewer for the same merchant.
type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByAddress(ctx context.Context, address string) (*Review, error)
	ListByMerchant(ctx context.Context, merchantAddr string, offset, limit int) ([]*Review, int64, error)
}

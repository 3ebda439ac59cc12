// Package usecases contains the subscription lifecycle and payment
// execution use cases.
package usecases

import "context"

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MerchantTransactionRecorder is the registry's ingestion point for payment
// outcomes. Implementations must verify the invocation stack: only the
// payment engine may report outcomes.
type MerchantTransactionRecorder interface {
	RecordTransaction(ctx context.Context, merchantAddress string, amount uint64, success bool) error
}

// Package usecases contains the platform administration use cases.
package usecases

import "context"

// TransactionManager runs a unit of work atomically.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

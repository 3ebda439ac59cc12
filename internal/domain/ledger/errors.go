package ledger

import "errors"

var (
	ErrAccountNotFound        = errors.New("token account not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInsufficientDelegation = errors.New("insufficient delegated amount")
	ErrUnauthorizedAuthority  = errors.New("authority may not move these funds")
	ErrAmountZero             = errors.New("amount must be greater than zero")

	// Invocation-stack violations for module-to-module calls.
	ErrMustBeInvokedByCaller = errors.New("operation must be invoked by another module")
	ErrUnauthorizedCaller    = errors.New("calling module is not authorized")
)

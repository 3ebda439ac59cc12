// Package ledger defines the token ledger port the payment engine settles
// against, plus the invocation stack used to authorize module-to-module calls.
package ledger

import (
	"context"
	"time"
)

// TokenLedger is the settlement substrate. Balances are held per (owner, mint)
// pair; an owner may grant a delegate a bounded spending allowance, which is
// how a subscription pulls funds from a payer without holding their keys.
type TokenLedger interface {
	// EnsureAccount creates the (owner, mint) balance account if it does not
	// exist and returns its address.
	EnsureAccount(ctx context.Context, owner, mint string) (string, error)

	// Balance returns the owner's balance for the mint.
	Balance(ctx context.Context, owner, mint string) (uint64, error)

	// Mint credits an owner's account. Used by deposits and test fixtures.
	Mint(ctx context.Context, owner, mint string, amount uint64) error

	// Transfer moves amount from one owner to another. The authority must be
	// the source owner, or a delegate with sufficient remaining allowance;
	// delegate transfers reduce the allowance by the amount moved.
	Transfer(ctx context.Context, req TransferRequest) error

	// Approve grants delegate an allowance over the owner's account,
	// replacing any previous delegation.
	Approve(ctx context.Context, owner, mint, delegate string, amount uint64) error

	// Revoke clears the owner's delegation for the mint.
	Revoke(ctx context.Context, owner, mint string) error

	// Delegation returns the current delegate and remaining allowance.
	// An empty delegate means no delegation is in place.
	Delegation(ctx context.Context, owner, mint string) (delegate string, amount uint64, err error)
}

// TransferRequest describes a single ledger movement.
type TransferRequest struct {
	Mint      string
	FromOwner string
	ToOwner   string
	Amount    uint64
	// Authority is the address exercising the transfer: the source owner
	// itself, or a delegate approved on the source account.
	Authority string
}

// Clock abstracts time so due-date and window logic can be tested
// deterministically.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

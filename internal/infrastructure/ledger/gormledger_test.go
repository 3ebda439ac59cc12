package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domledger "github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
)

const testMint = "mint-usdc"

func setupLedger(t *testing.T) *GormLedger {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.TokenAccountModel{}))
	return NewGormLedger(db)
}

func TestGormLedgerMintAndBalance(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	assert.ErrorIs(t, l.Mint(ctx, "alice", testMint, 0), domledger.ErrAmountZero)

	require.NoError(t, l.Mint(ctx, "alice", testMint, 500))
	require.NoError(t, l.Mint(ctx, "alice", testMint, 250))

	balance, err := l.Balance(ctx, "alice", testMint)
	require.NoError(t, err)
	assert.EqualValues(t, 750, balance)

	_, err = l.Balance(ctx, "nobody", testMint)
	assert.ErrorIs(t, err, domledger.ErrAccountNotFound)
}

func TestGormLedgerEnsureAccountIdempotent(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()

	addr1, err := l.EnsureAccount(ctx, "alice", testMint)
	require.NoError(t, err)
	addr2, err := l.EnsureAccount(ctx, "alice", testMint)
	require.NoError(t, err)
	assert.Equal(t, addr1, addr2)
}

func TestGormLedgerTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("owner moves own funds", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 300, Authority: "alice",
		})
		require.NoError(t, err)

		aliceBal, err := l.Balance(ctx, "alice", testMint)
		require.NoError(t, err)
		assert.EqualValues(t, 700, aliceBal)

		bobBal, err := l.Balance(ctx, "bob", testMint)
		require.NoError(t, err)
		assert.EqualValues(t, 300, bobBal)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 100))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 101, Authority: "alice",
		})
		assert.ErrorIs(t, err, domledger.ErrInsufficientFunds)
	})

	t.Run("unknown authority rejected", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 100))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 50, Authority: "mallory",
		})
		assert.ErrorIs(t, err, domledger.ErrUnauthorizedAuthority)
	})

	t.Run("self transfer nets out", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 100))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "alice",
			Amount: 40, Authority: "alice",
		})
		require.NoError(t, err)

		balance, err := l.Balance(ctx, "alice", testMint)
		require.NoError(t, err)
		assert.EqualValues(t, 100, balance)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		l := setupLedger(t)
		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 0, Authority: "alice",
		})
		assert.ErrorIs(t, err, domledger.ErrAmountZero)
	})
}

func TestGormLedgerDelegation(t *testing.T) {
	ctx := context.Background()

	t.Run("delegate transfer reduces allowance", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))
		require.NoError(t, l.Approve(ctx, "alice", testMint, "spender", 600))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 400, Authority: "spender",
		})
		require.NoError(t, err)

		delegate, remaining, err := l.Delegation(ctx, "alice", testMint)
		require.NoError(t, err)
		assert.Equal(t, "spender", delegate)
		assert.EqualValues(t, 200, remaining)

		bobBal, err := l.Balance(ctx, "bob", testMint)
		require.NoError(t, err)
		assert.EqualValues(t, 400, bobBal)
	})

	t.Run("allowance exhausted", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))
		require.NoError(t, l.Approve(ctx, "alice", testMint, "spender", 100))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 101, Authority: "spender",
		})
		assert.ErrorIs(t, err, domledger.ErrInsufficientDelegation)
	})

	t.Run("approve replaces previous delegation", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))
		require.NoError(t, l.Approve(ctx, "alice", testMint, "spender", 600))
		require.NoError(t, l.Approve(ctx, "alice", testMint, "other", 50))

		err := l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 10, Authority: "spender",
		})
		assert.ErrorIs(t, err, domledger.ErrUnauthorizedAuthority)

		delegate, remaining, err := l.Delegation(ctx, "alice", testMint)
		require.NoError(t, err)
		assert.Equal(t, "other", delegate)
		assert.EqualValues(t, 50, remaining)
	})

	t.Run("revoke clears delegation", func(t *testing.T) {
		l := setupLedger(t)
		require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))
		require.NoError(t, l.Approve(ctx, "alice", testMint, "spender", 600))
		require.NoError(t, l.Revoke(ctx, "alice", testMint))

		delegate, remaining, err := l.Delegation(ctx, "alice", testMint)
		require.NoError(t, err)
		assert.Empty(t, delegate)
		assert.Zero(t, remaining)

		err = l.Transfer(ctx, domledger.TransferRequest{
			Mint: testMint, FromOwner: "alice", ToOwner: "bob",
			Amount: 10, Authority: "spender",
		})
		assert.ErrorIs(t, err, domledger.ErrUnauthorizedAuthority)
	})
}

func TestGormLedgerTransferHook(t *testing.T) {
	l := setupLedger(t)
	ctx := context.Background()
	require.NoError(t, l.Mint(ctx, "alice", testMint, 1000))

	hookErr := errors.New("hook rejected")
	var seen []domledger.TransferRequest
	l.SetTransferHook(func(ctx context.Context, req domledger.TransferRequest) error {
		seen = append(seen, req)
		return hookErr
	})

	err := l.Transfer(ctx, domledger.TransferRequest{
		Mint: testMint, FromOwner: "alice", ToOwner: "bob",
		Amount: 100, Authority: "alice",
	})
	assert.ErrorIs(t, err, hookErr)
	require.Len(t, seen, 1)
	assert.EqualValues(t, 100, seen[0].Amount)

	// The hook fired before any mutation, so balances are untouched.
	balance, err := l.Balance(ctx, "alice", testMint)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, balance)

	l.SetTransferHook(nil)
	require.NoError(t, l.Transfer(ctx, domledger.TransferRequest{
		Mint: testMint, FromOwner: "alice", ToOwner: "bob",
		Amount: 100, Authority: "alice",
	}))
}

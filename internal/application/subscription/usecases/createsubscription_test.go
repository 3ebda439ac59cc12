package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant/valueobjects"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
)

func newCreateUseCase(f *paymentFixture) *CreateSubscriptionUseCase {
	return NewCreateSubscriptionUseCase(
		f.subRepo, f.merchantRepo, f.platformRepo, f.tokenLedger,
		f.clock, f.txManager, f.dispatcher, f.log,
	)
}

func verifyMerchant(t *testing.T, f *paymentFixture) {
	m, err := f.merchantRepo.FindByAddress(context.Background(), f.sub.Merchant())
	require.NoError(t, err)
	require.NoError(t, m.Approve(valueobjects.TierVerified, f.clock.now))
	require.NoError(t, f.merchantRepo.Update(context.Background(), m))
}

func TestCreateSubscription(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	uc := newCreateUseCase(f)
	ctx := context.Background()

	t.Run("unverified merchant rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, CreateSubscriptionCommand{
			Payer:             "payer-early",
			MerchantAddress:   f.sub.Merchant(),
			Amount:            paymentAmount,
			FrequencySeconds:  frequency,
			MaxPerTransaction: 2_000_000,
			LifetimeCap:       50_000_000,
			MerchantName:      "Acme",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))
	})

	verifyMerchant(t, f)

	cmd := CreateSubscriptionCommand{
		Payer:             "payer-new",
		MerchantAddress:   f.sub.Merchant(),
		Amount:            paymentAmount,
		FrequencySeconds:  frequency,
		MaxPerTransaction: 2_000_000,
		LifetimeCap:       50_000_000,
		MerchantName:      "Acme",
	}

	t.Run("creates and delegates", func(t *testing.T) {
		result, err := uc.Execute(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "payer-new", result.Payer)
		assert.Equal(t, testMint, result.Mint)
		assert.True(t, result.IsActive)
		assert.Equal(t, f.start.Add(frequency*time.Second).Unix(), result.NextPayment)

		// The subscription address holds a delegation bounded by the cap.
		delegate, remaining, err := f.tokenLedger.Delegation(ctx, "payer-new", testMint)
		require.NoError(t, err)
		assert.Equal(t, result.Address, delegate)
		assert.EqualValues(t, cmd.LifetimeCap, remaining)

		p, err := f.platformRepo.Get(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, p.TotalSubscriptions())
	})

	t.Run("duplicate agreement rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeConflict, errType(t, err))
	})

	t.Run("unregistered merchant rejected", func(t *testing.T) {
		bad := cmd
		bad.Payer = "payer-other"
		bad.MerchantAddress = "no-such-merchant"
		_, err := uc.Execute(ctx, bad)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeNotFound, errType(t, err))
	})

	t.Run("suspended merchant rejected", func(t *testing.T) {
		m, err := f.merchantRepo.FindByAddress(ctx, f.sub.Merchant())
		require.NoError(t, err)
		require.NoError(t, m.Suspend("fraud reports", f.clock.now))
		require.NoError(t, f.merchantRepo.Update(ctx, m))

		bad := cmd
		bad.Payer = "payer-other"
		_, err = uc.Execute(ctx, bad)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, errType(t, err))
	})
}

func TestCreateSubscriptionPlatformPaused(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	uc := newCreateUseCase(f)
	ctx := context.Background()
	verifyMerchant(t, f)

	p, err := f.platformRepo.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, p.EmergencyPause(f.clock.now))
	require.NoError(t, f.platformRepo.Update(ctx, p))

	_, err = uc.Execute(ctx, CreateSubscriptionCommand{
		Payer:             "payer-paused",
		MerchantAddress:   f.sub.Merchant(),
		Amount:            paymentAmount,
		FrequencySeconds:  frequency,
		MaxPerTransaction: 2_000_000,
		LifetimeCap:       50_000_000,
		MerchantName:      "Acme",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))

	// Nothing was set up for the payer while paused.
	subs, total, err := f.subRepo.FindByPayer(ctx, "payer-paused", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, subs)
	assert.Zero(t, total)
	_, _, err = f.tokenLedger.Delegation(ctx, "payer-paused", testMint)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCreateSubscriptionValidation(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	uc := newCreateUseCase(f)
	ctx := context.Background()
	verifyMerchant(t, f)

	base := CreateSubscriptionCommand{
		Payer:             "payer-new",
		MerchantAddress:   f.sub.Merchant(),
		Amount:            paymentAmount,
		FrequencySeconds:  frequency,
		MaxPerTransaction: 2_000_000,
		LifetimeCap:       50_000_000,
		MerchantName:      "Acme",
	}

	t.Run("frequency below an hour", func(t *testing.T) {
		cmd := base
		cmd.FrequencySeconds = 3599
		_, err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))
	})

	t.Run("zero amount", func(t *testing.T) {
		cmd := base
		cmd.Amount = 0
		_, err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))
	})

	t.Run("amount above per-transaction cap", func(t *testing.T) {
		cmd := base
		cmd.MaxPerTransaction = paymentAmount - 1
		_, err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))
	})

	t.Run("lifetime cap below amount", func(t *testing.T) {
		cmd := base
		cmd.LifetimeCap = paymentAmount - 1
		_, err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeValidation, errType(t, err))
	})
}

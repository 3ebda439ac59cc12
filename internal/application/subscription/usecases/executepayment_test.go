package usecases

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	merchantusecases "github.com/lutrii-inc/lutrii/internal/application/merchant/usecases"
	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/platform"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	infraledger "github.com/lutrii-inc/lutrii/internal/infrastructure/ledger"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/repository"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

const (
	testMint       = "mint-usdc"
	testPayer      = "payer-wallet"
	merchantOwner  = "merchant-owner"
	platformAuth   = "platform-authority"
	paymentAmount  = 1_000_000
	frequency      = 86_400
	defaultFunding = 10_000_000
	defaultDaily   = 1_000_000_000
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type paymentFixture struct {
	subRepo      *repository.SubscriptionRepository
	merchantRepo *repository.MerchantRepository
	platformRepo *repository.PlatformRepository
	tokenLedger  *infraledger.GormLedger
	clock        *testClock
	txManager    *db.TransactionManager
	dispatcher   *events.Dispatcher
	log          logger.Interface
	uc           *ExecutePaymentUseCase
	sub          *subscription.Subscription
	merch        *merchant.Merchant
	start        time.Time
}

func newPaymentFixture(t *testing.T, payerFunds, dailyLimit uint64) *paymentFixture {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&models.PlatformStateModel{},
		&models.SubscriptionModel{},
		&models.MerchantModel{},
		&models.ReviewModel{},
		&models.TokenAccountModel{},
	))

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	start := time.Unix(1_700_000_000, 0).UTC()
	clock := &testClock{now: start}
	ctx := context.Background()

	subRepo := repository.NewSubscriptionRepository(gormDB)
	merchantRepo := repository.NewMerchantRepository(gormDB)
	platformRepo := repository.NewPlatformRepository(gormDB)
	tokenLedger := infraledger.NewGormLedger(gormDB)
	txManager := db.NewTransactionManager(gormDB)
	dispatcher := events.NewDispatcher(log)

	p, err := platform.NewPlatform(platformAuth, testMint, "fee-account", dailyLimit, 100, start)
	require.NoError(t, err)
	require.NoError(t, platformRepo.Create(ctx, p))

	m, err := merchant.NewMerchant(merchantOwner, "Acme Corp", "https://acme.example/hook", "saas", start)
	require.NoError(t, err)
	require.NoError(t, merchantRepo.Create(ctx, m))

	s, err := subscription.NewSubscription(
		testPayer, m.Address(), testMint,
		paymentAmount, frequency, 2_000_000, 100_000_000,
		"Acme", start,
	)
	require.NoError(t, err)
	require.NoError(t, subRepo.Create(ctx, s))

	if payerFunds > 0 {
		require.NoError(t, tokenLedger.Mint(ctx, testPayer, testMint, payerFunds))
	} else {
		_, err := tokenLedger.EnsureAccount(ctx, testPayer, testMint)
		require.NoError(t, err)
	}
	require.NoError(t, tokenLedger.Approve(ctx, testPayer, testMint, s.Address(), s.LifetimeCap()))

	recorder := merchantusecases.NewRecordTransactionUseCase(merchantRepo, clock, txManager, dispatcher, log)
	uc := NewExecutePaymentUseCase(subRepo, merchantRepo, platformRepo, tokenLedger, recorder, clock, txManager, dispatcher, log)

	return &paymentFixture{
		subRepo:      subRepo,
		merchantRepo: merchantRepo,
		platformRepo: platformRepo,
		tokenLedger:  tokenLedger,
		clock:        clock,
		txManager:    txManager,
		dispatcher:   dispatcher,
		log:          log,
		uc:           uc,
		sub:          s,
		merch:        m,
		start:        start,
	}
}

func (f *paymentFixture) execute(ctx context.Context) (*ExecutePaymentResult, error) {
	return f.uc.Execute(ctx, ExecutePaymentCommand{SubscriptionAddress: f.sub.Address()})
}

func (f *paymentFixture) balance(t *testing.T, owner string) uint64 {
	bal, err := f.tokenLedger.Balance(context.Background(), owner, testMint)
	require.NoError(t, err)
	return bal
}

func errType(t *testing.T, err error) apperrors.ErrorType {
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Type
}

func TestExecutePaymentSuccess(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	ctx := context.Background()
	f.clock.now = f.start.Add(frequency * time.Second)

	result, err := f.execute(ctx)
	require.NoError(t, err)

	// 100 bps of 1_000_000 is exactly the minimum fee.
	assert.EqualValues(t, 10_000, result.Fee)
	assert.EqualValues(t, paymentAmount, result.Amount)
	assert.EqualValues(t, paymentAmount-10_000, result.MerchantReceived)
	assert.EqualValues(t, 1, result.PaymentCount)
	assert.Equal(t, f.clock.now.Add(frequency*time.Second).Unix(), result.NextPayment)

	assert.EqualValues(t, defaultFunding-paymentAmount, f.balance(t, testPayer))
	assert.EqualValues(t, paymentAmount-10_000, f.balance(t, merchantOwner))
	assert.EqualValues(t, 10_000, f.balance(t, platformAuth))

	s, err := f.subRepo.FindByAddress(ctx, f.sub.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.PaymentCount())
	assert.EqualValues(t, paymentAmount, s.TotalPaid())
	assert.False(t, s.PaymentInProgress())
	assert.Equal(t, f.clock.now.Unix(), s.LastPayment().Unix())

	// Both transfers ran under the subscription's delegation.
	delegate, remaining, err := f.tokenLedger.Delegation(ctx, testPayer, testMint)
	require.NoError(t, err)
	assert.Equal(t, f.sub.Address(), delegate)
	assert.EqualValues(t, f.sub.LifetimeCap()-paymentAmount, remaining)

	m, err := f.merchantRepo.FindByAddress(ctx, f.sub.Merchant())
	require.NoError(t, err)
	assert.EqualValues(t, 1, m.TotalTransactions())
	assert.EqualValues(t, paymentAmount, m.TotalVolume())
	assert.EqualValues(t, 10, m.CommunityScore())

	p, err := f.platformRepo.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.TotalTransactions())
	assert.EqualValues(t, paymentAmount, p.Volume24h())
}

func TestExecutePaymentNotDue(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)

	_, err := f.execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))
	assert.EqualValues(t, defaultFunding, f.balance(t, testPayer))
}

func TestExecutePaymentReentrancyRejected(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	ctx := context.Background()
	f.clock.now = f.start.Add(frequency * time.Second)

	// The hook plays a token that calls back into the engine while the first
	// transfer is settling. The nested execution must see the in-progress
	// flag already committed to the row and bail out.
	var nestedErr error
	calls := 0
	f.tokenLedger.SetTransferHook(func(hookCtx context.Context, req ledger.TransferRequest) error {
		calls++
		if calls > 1 {
			return nil
		}
		_, nestedErr = f.uc.Execute(hookCtx, ExecutePaymentCommand{SubscriptionAddress: f.sub.Address()})
		return nestedErr
	})

	_, err := f.execute(ctx)
	require.Error(t, err)
	require.Error(t, nestedErr)
	assert.Equal(t, apperrors.ErrorTypeConflict, errType(t, nestedErr))
	assert.Equal(t, 1, calls)

	// Everything rolled back: no funds moved and the flag is clear again.
	assert.EqualValues(t, defaultFunding, f.balance(t, testPayer))
	s, err := f.subRepo.FindByAddress(ctx, f.sub.Address())
	require.NoError(t, err)
	assert.False(t, s.PaymentInProgress())
	assert.Zero(t, s.PaymentCount())

	// With the hostile token gone the same payment goes through.
	f.tokenLedger.SetTransferHook(nil)
	result, err := f.execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.PaymentCount)
}

func TestExecutePaymentInsufficientFunds(t *testing.T) {
	f := newPaymentFixture(t, paymentAmount/2, defaultDaily)
	ctx := context.Background()
	f.clock.now = f.start.Add(frequency * time.Second)

	_, err := f.execute(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))

	// The settlement failure is recorded after the rollback.
	p, err := f.platformRepo.Get(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.FailedTxCount())
	assert.Zero(t, p.TotalTransactions())

	m, err := f.merchantRepo.FindByAddress(ctx, f.sub.Merchant())
	require.NoError(t, err)
	assert.EqualValues(t, 1, m.FailedTransactions())
	assert.EqualValues(t, -25, m.CommunityScore())

	s, err := f.subRepo.FindByAddress(ctx, f.sub.Address())
	require.NoError(t, err)
	assert.Zero(t, s.PaymentCount())
	assert.False(t, s.PaymentInProgress())
}

func TestExecutePaymentVolumeGuard(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, paymentAmount+paymentAmount/2)
	ctx := context.Background()
	f.clock.now = f.start.Add(frequency * time.Second)

	// A second payer against the same merchant, due at the same time.
	other, err := subscription.NewSubscription(
		"payer-two", f.sub.Merchant(), testMint,
		paymentAmount, frequency, 2_000_000, 100_000_000,
		"Acme", f.start,
	)
	require.NoError(t, err)
	require.NoError(t, f.subRepo.Create(ctx, other))
	require.NoError(t, f.tokenLedger.Mint(ctx, "payer-two", testMint, defaultFunding))
	require.NoError(t, f.tokenLedger.Approve(ctx, "payer-two", testMint, other.Address(), other.LifetimeCap()))

	_, err = f.execute(ctx)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, ExecutePaymentCommand{SubscriptionAddress: other.Address()})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))

	// Limit rejections are not settlement failures.
	p, err := f.platformRepo.Get(ctx)
	require.NoError(t, err)
	assert.Zero(t, p.FailedTxCount())
	assert.EqualValues(t, paymentAmount, p.Volume24h())

	// Once the window rolls over the held-back payment succeeds.
	f.clock.now = f.clock.now.Add(25 * time.Hour)
	_, err = f.uc.Execute(ctx, ExecutePaymentCommand{SubscriptionAddress: other.Address()})
	require.NoError(t, err)
}

func TestExecutePaymentPlatformPaused(t *testing.T) {
	f := newPaymentFixture(t, defaultFunding, defaultDaily)
	ctx := context.Background()
	f.clock.now = f.start.Add(frequency * time.Second)

	p, err := f.platformRepo.Get(ctx)
	require.NoError(t, err)
	require.NoError(t, p.EmergencyPause(f.clock.now))
	require.NoError(t, f.platformRepo.Update(ctx, p))

	_, err = f.execute(ctx)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeGuard, errType(t, err))
	assert.EqualValues(t, defaultFunding, f.balance(t, testPayer))
}

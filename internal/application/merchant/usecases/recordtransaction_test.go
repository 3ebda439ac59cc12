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

	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/merchant"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/persistence/models"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/repository"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

type registryFixture struct {
	db           *gorm.DB
	merchantRepo *repository.MerchantRepository
	clock        *testClock
	txManager    *db.TransactionManager
	dispatcher   *events.Dispatcher
	log          logger.Interface
	merch        *merchant.Merchant
	start        time.Time
}

func newRegistryFixture(t *testing.T) *registryFixture {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(
		&models.PlatformStateModel{},
		&models.SubscriptionModel{},
		&models.MerchantModel{},
		&models.ReviewModel{},
	))

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	start := time.Unix(1_700_000_000, 0).UTC()
	merchantRepo := repository.NewMerchantRepository(gormDB)

	m, err := merchant.NewMerchant("merchant-owner", "Acme Corp", "https://acme.example/hook", "saas", start)
	require.NoError(t, err)
	require.NoError(t, merchantRepo.Create(context.Background(), m))

	return &registryFixture{
		db:           gormDB,
		merchantRepo: merchantRepo,
		clock:        &testClock{now: start},
		txManager:    db.NewTransactionManager(gormDB),
		dispatcher:   events.NewDispatcher(log),
		log:          log,
		merch:        m,
		start:        start,
	}
}

func appErrType(t *testing.T, err error) apperrors.ErrorType {
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Type
}

func paymentsFrame(ctx context.Context) context.Context {
	return ledger.PushInvocation(ctx, ledger.Invocation{
		Module:    ledger.ModulePayments,
		Authority: "subscription-addr",
	})
}

func TestRecordTransactionRequiresPaymentsFrame(t *testing.T) {
	f := newRegistryFixture(t)
	uc := NewRecordTransactionUseCase(f.merchantRepo, f.clock, f.txManager, f.dispatcher, f.log)
	cmd := RecordTransactionCommand{MerchantAddress: f.merch.Address(), Amount: 1_000_000, Success: true}

	t.Run("direct call rejected", func(t *testing.T) {
		err := uc.Execute(context.Background(), cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErrType(t, err))
		assert.ErrorIs(t, err, ledger.ErrMustBeInvokedByCaller)
	})

	t.Run("wrong module rejected", func(t *testing.T) {
		ctx := ledger.PushInvocation(context.Background(), ledger.Invocation{
			Module:    ledger.ModuleRegistry,
			Authority: "someone",
		})
		err := uc.Execute(ctx, cmd)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrorTypeForbidden, appErrType(t, err))
		assert.ErrorIs(t, err, ledger.ErrUnauthorizedCaller)
	})

	t.Run("payment engine frame accepted", func(t *testing.T) {
		require.NoError(t, uc.Execute(paymentsFrame(context.Background()), cmd))

		m, err := f.merchantRepo.FindByAddress(context.Background(), f.merch.Address())
		require.NoError(t, err)
		assert.EqualValues(t, 1, m.TotalTransactions())
		assert.EqualValues(t, 1_000_000, m.TotalVolume())
		assert.EqualValues(t, 10, m.CommunityScore())
	})
}

func TestRecordTransactionOutcomes(t *testing.T) {
	f := newRegistryFixture(t)
	uc := NewRecordTransactionUseCase(f.merchantRepo, f.clock, f.txManager, f.dispatcher, f.log)
	ctx := paymentsFrame(context.Background())

	require.NoError(t, uc.RecordTransaction(ctx, f.merch.Address(), 500_000, true))
	require.NoError(t, uc.RecordTransaction(ctx, f.merch.Address(), 500_000, false))

	m, err := f.merchantRepo.FindByAddress(ctx, f.merch.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 1, m.FailedTransactions())
	assert.EqualValues(t, 10-25, m.CommunityScore())
}

func TestRecordTransactionUnknownMerchant(t *testing.T) {
	f := newRegistryFixture(t)
	uc := NewRecordTransactionUseCase(f.merchantRepo, f.clock, f.txManager, f.dispatcher, f.log)

	// A subscription can outlive its registry entry; the payment must not
	// fail because the stats update has nowhere to go.
	err := uc.RecordTransaction(paymentsFrame(context.Background()), "gone-merchant", 1_000_000, true)
	assert.NoError(t, err)
}

// Package worker implements the `lutrii worker` command: a background loop
// that scans for due subscriptions and executes their payments.
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	merchantUC "github.com/lutrii-inc/lutrii/internal/application/merchant/usecases"
	subscriptionUC "github.com/lutrii-inc/lutrii/internal/application/subscription/usecases"
	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/domain/subscription"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/config"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/database"
	infraLedger "github.com/lutrii-inc/lutrii/internal/infrastructure/ledger"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/repository"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

var (
	env       string
	interval  time.Duration
	batchSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the payment execution worker",
		Long:  `Periodically scan for due subscriptions and execute their payments.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Scan interval")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Maximum subscriptions executed per scan")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("worker")

	log.Infow("starting payment worker", "environment", env, "interval", interval.String(), "batch_size", batchSize)

	gormDB, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(gormDB); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	dispatcher := events.NewDispatcher(log)
	txManager := db.NewTransactionManager(gormDB)
	clock := ledger.ClockFunc(biztime.Now)

	subscriptionRepo := repository.NewSubscriptionRepository(gormDB)
	merchantRepo := repository.NewMerchantRepository(gormDB)
	platformRepo := repository.NewPlatformRepository(gormDB)
	tokenLedger := infraLedger.NewGormLedger(gormDB)

	recorder := merchantUC.NewRecordTransactionUseCase(merchantRepo, clock, txManager, dispatcher, log)
	executeUC := subscriptionUC.NewExecutePaymentUseCase(
		subscriptionRepo, merchantRepo, platformRepo, tokenLedger,
		recorder, clock, txManager, dispatcher, log,
	)

	runner := &dueScanner{
		subscriptionRepo: subscriptionRepo,
		executeUC:        executeUC,
		clock:            clock,
		batchSize:        batchSize,
		logger:           log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runner.scan(ctx)

	for {
		select {
		case <-ticker.C:
			runner.scan(ctx)
		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig.String())
			return nil
		}
	}
}

type dueScanner struct {
	subscriptionRepo subscription.Repository
	executeUC        *subscriptionUC.ExecutePaymentUseCase
	clock            ledger.Clock
	batchSize        int
	logger           logger.Interface
}

// scan executes every due subscription in the batch. Failures are isolated:
// one subscription's guard rejection or settlement failure never stops the
// rest of the batch.
func (s *dueScanner) scan(ctx context.Context) {
	due, err := s.subscriptionRepo.FindDue(ctx, s.clock.Now().Unix(), s.batchSize)
	if err != nil {
		s.logger.Errorw("due scan failed", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	executed := 0
	for _, sub := range due {
		if ctx.Err() != nil {
			return
		}
		_, err := s.executeUC.Execute(ctx, subscriptionUC.ExecutePaymentCommand{
			SubscriptionAddress: sub.Address(),
		})
		switch {
		case err == nil:
			executed++
		case apperrors.IsAppError(err):
			// Guard rejections and settlement failures are expected outcomes;
			// the executor already recorded them.
			s.logger.Debugw("payment skipped", "subscription", sub.Address(), "reason", err.Error())
		default:
			s.logger.Errorw("payment execution failed", "subscription", sub.Address(), "error", err)
		}
	}

	s.logger.Infow("due scan complete", "due", len(due), "executed", executed)
}

// Package server implements the `lutrii server` command: full dependency
// wiring and the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	merchantUC "github.com/lutrii-inc/lutrii/internal/application/merchant/usecases"
	platformUC "github.com/lutrii-inc/lutrii/internal/application/platform/usecases"
	subscriptionUC "github.com/lutrii-inc/lutrii/internal/application/subscription/usecases"
	"github.com/lutrii-inc/lutrii/internal/domain/ledger"
	"github.com/lutrii-inc/lutrii/internal/domain/shared/events"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/auth"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/config"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/database"
	infraLedger "github.com/lutrii-inc/lutrii/internal/infrastructure/ledger"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/migration"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/ratelimit"
	"github.com/lutrii-inc/lutrii/internal/infrastructure/repository"
	httpRouter "github.com/lutrii-inc/lutrii/internal/interfaces/http"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/handlers"
	"github.com/lutrii-inc/lutrii/internal/shared/biztime"
	"github.com/lutrii-inc/lutrii/internal/shared/db"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Lutrii API server with the configured database, ledger and rate limiter.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

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
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.DefaultWriter = io.Discard

	gormDB, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(gormDB); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	if autoMigrate {
		manager := migration.NewManager(env)
		if err := manager.Migrate(gormDB, migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Errorw("failed to close redis client", "error", err)
		}
	}()

	limiter := ratelimit.NewRedisRateLimiter(redisClient)
	jwtService := auth.NewJWTService(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)

	dispatcher := events.NewDispatcher(log)
	txManager := db.NewTransactionManager(gormDB)
	clock := ledger.ClockFunc(biztime.Now)

	platformRepo := repository.NewPlatformRepository(gormDB)
	subscriptionRepo := repository.NewSubscriptionRepository(gormDB)
	merchantRepo := repository.NewMerchantRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	tokenLedger := infraLedger.NewGormLedger(gormDB)

	initializeUC := platformUC.NewInitializePlatformUseCase(platformRepo, tokenLedger, clock, txManager, dispatcher, log)
	updateConfigUC := platformUC.NewUpdatePlatformConfigUseCase(platformRepo, clock, txManager, dispatcher, log)
	emergencyPauseUC := platformUC.NewEmergencyPauseUseCase(platformRepo, clock, txManager, dispatcher, log)
	getPlatformUC := platformUC.NewGetPlatformUseCase(platformRepo)

	recordTransactionUC := merchantUC.NewRecordTransactionUseCase(merchantRepo, clock, txManager, dispatcher, log)

	createSubUC := subscriptionUC.NewCreateSubscriptionUseCase(subscriptionRepo, merchantRepo, platformRepo, tokenLedger, clock, txManager, dispatcher, log)
	getSubUC := subscriptionUC.NewGetSubscriptionUseCase(subscriptionRepo)
	listSubsUC := subscriptionUC.NewListSubscriptionsUseCase(subscriptionRepo)
	pauseSubUC := subscriptionUC.NewPauseSubscriptionUseCase(subscriptionRepo, clock, txManager, dispatcher, log)
	resumeSubUC := subscriptionUC.NewResumeSubscriptionUseCase(subscriptionRepo, clock, txManager, dispatcher, log)
	cancelSubUC := subscriptionUC.NewCancelSubscriptionUseCase(subscriptionRepo, merchantRepo, platformRepo, tokenLedger, clock, txManager, dispatcher, log)
	closeSubUC := subscriptionUC.NewCloseSubscriptionUseCase(subscriptionRepo, clock, txManager, log)
	updateLimitsUC := subscriptionUC.NewUpdateLimitsUseCase(subscriptionRepo, tokenLedger, clock, txManager, dispatcher, log)
	updateAmountUC := subscriptionUC.NewUpdateAmountUseCase(subscriptionRepo, clock, txManager, dispatcher, log)
	executePaymentUC := subscriptionUC.NewExecutePaymentUseCase(subscriptionRepo, merchantRepo, platformRepo, tokenLedger, recordTransactionUC, clock, txManager, dispatcher, log)

	applyUC := merchantUC.NewApplyForVerificationUseCase(merchantRepo, clock, txManager, dispatcher, log)
	approveUC := merchantUC.NewApproveMerchantUseCase(merchantRepo, clock, txManager, dispatcher, log)
	suspendUC := merchantUC.NewSuspendMerchantUseCase(merchantRepo, clock, txManager, dispatcher, log)
	updateInfoUC := merchantUC.NewUpdateMerchantInfoUseCase(merchantRepo, clock, txManager, log)
	premiumBadgeUC := merchantUC.NewSubscribePremiumBadgeUseCase(merchantRepo, platformRepo, tokenLedger, clock, txManager, dispatcher, log)
	submitReviewUC := merchantUC.NewSubmitReviewUseCase(merchantRepo, reviewRepo, subscriptionRepo, platformRepo, clock, txManager, dispatcher, log)
	getMerchantUC := merchantUC.NewGetMerchantUseCase(merchantRepo)
	listMerchantsUC := merchantUC.NewListMerchantsUseCase(merchantRepo)
	listReviewsUC := merchantUC.NewListReviewsUseCase(reviewRepo)

	router := httpRouter.NewRouter(
		httpRouter.RouterConfig{
			Server:         cfg.Server,
			RateLimit:      cfg.RateLimit,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
		httpRouter.Handlers{
			Auth:     handlers.NewAuthHandler(jwtService),
			Platform: handlers.NewPlatformHandler(initializeUC, updateConfigUC, emergencyPauseUC, getPlatformUC),
			Subscription: handlers.NewSubscriptionHandler(
				createSubUC, getSubUC, listSubsUC,
				pauseSubUC, resumeSubUC, cancelSubUC, closeSubUC,
				updateLimitsUC, updateAmountUC, executePaymentUC,
			),
			Merchant: handlers.NewMerchantHandler(
				applyUC, approveUC, suspendUC, updateInfoUC,
				premiumBadgeUC, submitReviewUC,
				getMerchantUC, listMerchantsUC, listReviewsUC,
			),
		},
		jwtService,
		limiter,
		log,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
		log.Infow("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := router.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

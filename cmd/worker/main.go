package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobive/backend/internal/config"
	"github.com/jobive/backend/internal/db"
	"github.com/jobive/backend/internal/events"
	"github.com/jobive/backend/internal/gateway"
	"github.com/jobive/backend/internal/repositories"
	"github.com/jobive/backend/internal/services"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repos
	userRepo := repositories.NewUserRepo(pool)
	jobRepo := repositories.NewJobRepo(pool)
	trainingRepo := repositories.NewTrainingRepo(pool)
	escrowRepo := repositories.NewEscrowRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	publisher := events.NewRedisPublisher(rdb, log)
	fapshi := gateway.NewFapshi(cfg.FapshiBaseURL, cfg.FapshiAPIUser, cfg.FapshiAPIKey, log)
	mail := services.NewMailClient(cfg.MailEndpoint, cfg.MailToken, cfg.MailFrom, log)
	paymentService := services.NewPaymentService(paymentRepo, trainingRepo, auditRepo, fapshi, publisher, log)
	escrowService := services.NewEscrowService(escrowRepo, jobRepo, userRepo, auditRepo, fapshi, mail, publisher, log)

	log.Info("worker started",
		zap.Duration("payment_poll_interval", cfg.PaymentPollInterval),
		zap.Duration("release_retry_interval", cfg.ReleaseRetryInterval),
	)

	pollTicker := time.NewTicker(cfg.PaymentPollInterval)
	releaseTicker := time.NewTicker(cfg.ReleaseRetryInterval)
	defer pollTicker.Stop()
	defer releaseTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-pollTicker.C:
			runPaymentPoll(ctx, paymentService, log)
		case <-releaseTicker.C:
			runReleaseRetry(ctx, escrowRepo, escrowService, cfg, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runPaymentPoll reconciles every non-terminal payment against the gateway.
func runPaymentPoll(ctx context.Context, paymentService *services.PaymentService, log *zap.Logger) {
	if err := paymentService.PollPending(ctx, 100); err != nil {
		log.Error("payment poll failed", zap.Error(err))
	}
}

// runReleaseRetry re-attempts payouts for escrows that have both
// confirmations but whose payout failed.
func runReleaseRetry(ctx context.Context, escrowRepo *repositories.EscrowRepo, escrowService *services.EscrowService, cfg *config.Config, log *zap.Logger) {
	escrows, err := escrowRepo.ListStuckReleases(ctx, cfg.ReleaseRetryAge, 50)
	if err != nil {
		log.Error("failed to list stuck releases", zap.Error(err))
		return
	}

	for i := range escrows {
		e := &escrows[i]
		log.Info("retrying escrow release", zap.String("escrow_id", e.ID.String()))
		if err := escrowService.Release(ctx, e); err != nil {
			log.Error("release retry failed", zap.String("escrow_id", e.ID.String()), zap.Error(err))
		}
	}
}

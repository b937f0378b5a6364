package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jobive/backend/internal/config"
	"github.com/jobive/backend/internal/db"
	"github.com/jobive/backend/internal/events"
	"github.com/jobive/backend/internal/gateway"
	apphttp "github.com/jobive/backend/internal/http"
	"github.com/jobive/backend/internal/http/handlers"
	"github.com/jobive/backend/internal/linkpreview"
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

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	jobRepo := repositories.NewJobRepo(pool)
	postRepo := repositories.NewPostRepo(pool)
	trainingRepo := repositories.NewTrainingRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	reviewRepo := repositories.NewReviewRepo(pool)
	escrowRepo := repositories.NewEscrowRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Outbound clients
	fapshi := gateway.NewFapshi(cfg.FapshiBaseURL, cfg.FapshiAPIUser, cfg.FapshiAPIKey, log)
	mail := services.NewMailClient(cfg.MailEndpoint, cfg.MailToken, cfg.MailFrom, log)
	previews := linkpreview.NewFetcher(5*time.Second, 2, log)

	// Services
	userService := services.NewUserService(userRepo, cfg, mail, log)
	jobService := services.NewJobService(jobRepo, auditRepo, log)
	postService := services.NewPostService(postRepo, previews, log)
	paymentService := services.NewPaymentService(paymentRepo, trainingRepo, auditRepo, fapshi, publisher, log)
	trainingService := services.NewTrainingService(trainingRepo, paymentService, auditRepo, log)
	messageService := services.NewMessageService(messageRepo, userRepo, log)
	reviewService := services.NewReviewService(reviewRepo, jobRepo, log)
	escrowService := services.NewEscrowService(escrowRepo, jobRepo, userRepo, auditRepo, fapshi, mail, publisher, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, log)
	userHandler := handlers.NewUserHandler(userService, reviewService, log)
	jobHandler := handlers.NewJobHandler(jobService, log)
	postHandler := handlers.NewPostHandler(postService, log)
	trainingHandler := handlers.NewTrainingHandler(trainingService, log)
	messageHandler := handlers.NewMessageHandler(messageService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)
	escrowHandler := handlers.NewEscrowHandler(escrowService, log)
	paymentHandler := handlers.NewPaymentHandler(paymentService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "message": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		authHandler, userHandler, jobHandler, postHandler, trainingHandler,
		messageHandler, reviewHandler, escrowHandler, paymentHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
